package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// templateNameRegex matches template names: lowercase words joined by dashes or underscores.
var templateNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateTemplateName validates a room template name.
//
// The validation rules are intentionally conservative because names appear in
// log lines, file names of exports and HTTP responses:
//   - No empty names
//   - No control characters
//   - Lowercase letters, digits, dash and underscore only
//   - Maximum length of 64 characters
func ValidateTemplateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTemplate, "template name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidTemplate, "template name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTemplate, "template name contains invalid control characters")
		}
	}

	if !templateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTemplate, "invalid template name: %q", name)
	}

	return nil
}

// ValidatePath validates a user supplied config or catalog path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRange checks that value lies in [lo, hi].
// A hi of zero or less means there is no upper bound.
func ValidateRange(field string, value, lo, hi int) error {
	if value < lo {
		return New(ErrCodeInvalidConfig, "%s must be at least %d (got %d)", field, lo, value)
	}
	if hi > 0 && value > hi {
		return New(ErrCodeInvalidConfig, "%s must be at most %d (got %d)", field, hi, value)
	}
	return nil
}

// ValidateChoice checks that value is one of choices (case-sensitive).
func ValidateChoice(field, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(choices, ", "))
}
