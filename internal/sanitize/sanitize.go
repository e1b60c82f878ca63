// Package sanitize converts arbitrary media titles into names that are safe
// to use as filenames and inside HTTP headers.
package sanitize

import "strings"

// Filename constraints
const (
	// MaxNameLength bounds sanitized names in characters
	MaxNameLength = 100

	// FallbackName is returned when nothing usable survives cleaning
	FallbackName = "audio"
)

// Characters replaced during cleaning
const (
	IllegalChars = `<>:"/\|?*`
	Replacement  = '-'
)

// Clean maps a raw title to a filesystem- and header-safe name. Illegal
// characters and control characters become hyphens, surrounding dots and
// spaces are trimmed, and the result is capped at MaxNameLength characters.
// Pure function: no I/O, same input always yields the same output.
func Clean(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return Replacement
		}
		if strings.ContainsRune(IllegalChars, r) {
			return Replacement
		}
		return r
	}, raw)

	cleaned = strings.Trim(cleaned, ". ")

	if runes := []rune(cleaned); len(runes) > MaxNameLength {
		cleaned = strings.Trim(string(runes[:MaxNameLength]), ". ")
	}

	if cleaned == "" {
		return FallbackName
	}
	return cleaned
}
