package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxTitleBytes is the MediaWiki limit for page titles.
const maxTitleBytes = 255

// titleIllegalChars are characters MediaWiki never accepts in a page title.
const titleIllegalChars = "#<>[]|{}"

// ValidateCategoryName validates a category title before it is sent to the API.
//
// The rules mirror what MediaWiki accepts as a page title:
//   - No empty names
//   - No control characters
//   - None of # < > [ ] | { }
//   - Maximum length of 255 bytes
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidCategory, "category name cannot be empty")
	}

	if len(name) > maxTitleBytes {
		return New(ErrCodeInvalidCategory, "category name too long (max %d bytes)", maxTitleBytes)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCategory, "category name contains invalid control characters")
		}
	}

	if i := strings.IndexAny(name, titleIllegalChars); i >= 0 {
		return New(ErrCodeInvalidCategory, "category name contains invalid character: %q", name[i])
	}

	return nil
}

// languageRegex matches Wikipedia language subdomains (en, de, simple, zh-min-nan, be-tarask).
var languageRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateLanguage validates a Wikipedia language code.
func ValidateLanguage(lang string) error {
	if lang == "" {
		return New(ErrCodeInvalidLanguage, "language cannot be empty")
	}
	if len(lang) > 32 || !languageRegex.MatchString(lang) {
		return New(ErrCodeInvalidLanguage, "invalid language code: %q", lang)
	}
	return nil
}

// ValidateOutputBase validates the base file name used for generated files.
//
// Validation rules:
//   - Base cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputBase(base string) error {
	if base == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxPathLength = 500
	if len(base) > maxPathLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxPathLength)
	}

	for _, r := range base {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, "\\") {
		return New(ErrCodeInvalidPath, "output name must name a file, not a directory")
	}

	return nil
}
