package errors

import (
	"strings"
	"unicode"
)

// MaxTreeBytes bounds the size of tree notation accepted from untrusted
// callers (HTTP request bodies).
const MaxTreeBytes = 32 << 20

// ValidateSource validates a tree source: "-" for stdin, an http(s) URL or a
// local file path.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}
	if source == "-" {
		return nil
	}
	if strings.Contains(source, "://") {
		return ValidateURL(source)
	}
	return ValidatePath(source)
}

// ValidatePath validates a local file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidSource, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidSource, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidSource, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidSource, "URL must use http or https scheme")
	}

	return nil
}

// ValidateTreeText rejects tree notation that is empty or larger than
// MaxTreeBytes.
func ValidateTreeText(text []byte) error {
	if len(text) == 0 {
		return New(ErrCodeInvalidInput, "tree notation cannot be empty")
	}
	if len(text) > MaxTreeBytes {
		return New(ErrCodeInvalidInput, "tree notation too large (max %d bytes)", MaxTreeBytes)
	}
	return nil
}
