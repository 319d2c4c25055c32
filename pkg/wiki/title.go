package wiki

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// categoryPrefix is the canonical namespace prefix accepted by every
// Wikipedia regardless of its content language.
const categoryPrefix = "Category:"

// NormalizeTitle converts user input into the title form used by the API.
//
// It trims whitespace, treats underscores as spaces, collapses runs of
// spaces, strips a leading "Category:" (case-insensitive) and upper-cases
// the first letter as MediaWiki does for Wikipedia titles:
//
//	NormalizeTitle("category:main_topic  classifications") // "Main topic classifications"
func NormalizeTitle(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) >= len(categoryPrefix) && strings.EqualFold(s[:len(categoryPrefix)], categoryPrefix) {
		s = strings.TrimSpace(s[len(categoryPrefix):])
	}
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// StripNamespace removes the localized namespace prefix from a title
// returned by the API ("Kategorie:Leben" -> "Leben").
// Only the first colon is significant; titles may contain more.
func StripNamespace(title string) string {
	if _, rest, ok := strings.Cut(title, ":"); ok {
		return rest
	}
	return title
}

// FileName converts a title into a file-system friendly base name by
// replacing spaces with underscores, the way Wikipedia URLs do.
func FileName(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}
