package render

import (
	"fmt"
	"slices"
	"strings"
)

// Supported output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatHTML = "html"
)

// DefaultFormats are produced when no format is requested.
var DefaultFormats = []string{FormatDOT, FormatSVG, FormatHTML}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatHTML: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
}

// ParseFormats splits a comma separated format list, lower-cases and
// deduplicates it. An empty list yields DefaultFormats.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return slices.Clone(DefaultFormats)
	}
	return formats
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// NeedsSVG reports whether any of formats requires a Graphviz layout.
func NeedsSVG(formats []string) bool {
	return slices.Contains(formats, FormatSVG) || slices.Contains(formats, FormatHTML)
}
