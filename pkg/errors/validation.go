package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb and #rrggbb color literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// colorNameRegex matches named colors such as "lightblue" or "gold".
var colorNameRegex = regexp.MustCompile(`^[a-z]+[0-9]*$`)

// ValidateColor checks that s is either a hex color literal or a lowercase
// color name understood by Graphviz and browsers.
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		if !hexColorRegex.MatchString(s) {
			return New(ErrCodeInvalidColor, "invalid hex color: %q", s)
		}
		return nil
	}
	if !colorNameRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid color name: %q", s)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
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

// ValidateNode checks that id is a valid node identity for a graph of n nodes.
func ValidateNode(id, n int) error {
	if id < 0 || id >= n {
		return New(ErrCodeNodeNotFound, "node %d out of range [0, %d)", id, n)
	}
	return nil
}
