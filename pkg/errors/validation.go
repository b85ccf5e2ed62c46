package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFilePath validates a figure file path given on the command line or
// in a config file. Relative and absolute paths are both accepted.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// transformNameRegex matches registrable transform and trace type names.
var transformNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateTypeName validates a trace type or transform module name.
// Names are lowercase identifiers such as "scatter" or "groupby".
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "type name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "type name too long (max 64 characters)")
	}
	if !transformNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid type name: %q", name)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
