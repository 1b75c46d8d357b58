package errors

import (
	"strings"
	"unicode"
)

// maxAttributeLength bounds a single macro attribute value.
const maxAttributeLength = 128

// ValidateAttribute validates a macro attribute value supplied by a user.
//
// Values end up as renderer arguments and as temporary file suffixes, so the
// rules reject anything that could escape the temp directory:
//   - No empty values
//   - No control characters
//   - No path separators, parent directory sequences or '*'
//   - Maximum length of 128 characters
//
// It does not check values against a list of supported themes or formats;
// the renderer reports those itself.
func ValidateAttribute(key, value string) error {
	code := ErrCodeInvalidInput
	switch key {
	case "format":
		code = ErrCodeInvalidFormat
	case "theme":
		code = ErrCodeInvalidTheme
	}

	if value == "" {
		return New(code, "%s cannot be empty", key)
	}

	if len(value) > maxAttributeLength {
		return New(code, "%s too long (max %d characters)", key, maxAttributeLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", key)
		}
	}

	for _, pattern := range []string{"/", "\\", "..", "*"} {
		if strings.Contains(value, pattern) {
			return New(code, "%s contains invalid characters: %q", key, pattern)
		}
	}

	return nil
}

// ValidateAttributeKey validates the key half of a key=value attribute.
func ValidateAttributeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "attribute key cannot be empty")
	}
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
			return New(ErrCodeInvalidInput, "attribute key %q contains invalid characters", key)
		}
	}
	return nil
}

// ValidatePath validates a user supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
