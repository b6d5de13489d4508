package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values for a named numeric input.
// Every logical bound and the density go through it before any arithmetic.
func ValidateFinite(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidateOutputPath validates a file path chosen for a rendered artifact.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// EnsureExtension appends ext to path unless path already ends with it.
// The comparison ignores case, so "Drawing.PNG" is left untouched.
func EnsureExtension(path, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		return path
	}
	return path + ext
}
