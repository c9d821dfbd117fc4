package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds widget and catalog entry IDs.
const MaxIDLength = 128

// ValidateID checks a widget or catalog entry ID.
//
// The rules are conservative because IDs end up in file names, log lines and
// terminal output:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of MaxIDLength bytes
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id %q contains control characters", id)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "id %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateSizeName checks that name is a non-empty lower-case token. Whether the
// name is a known size class is decided by the grid package.
func ValidateSizeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSizeClass, "size class cannot be empty")
	}
	if strings.ToLower(name) != name || strings.ContainsFunc(name, unicode.IsSpace) {
		return New(ErrCodeInvalidSizeClass, "size class must be a lower-case word: %q", name)
	}
	return nil
}
