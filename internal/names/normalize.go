package names

import (
	"strings"
	"unicode"
)

// normalize strips every whitespace rune (including ideographic space) and
// case-folds the result to lower case. Blank input yields nil so absent
// readings stay absent in storage.
func normalize(value string) *string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	if stripped == "" {
		return nil
	}

	lowered := strings.ToLower(stripped)
	return &lowered
}

// normalizeOptional applies normalize to an optional source field.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	return normalize(*value)
}
