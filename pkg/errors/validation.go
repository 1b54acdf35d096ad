package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It prevents control characters and unreasonable lengths; absolute paths
// are allowed since the CLI reads and writes local files.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateNodeID validates a node identifier used as a zoom target.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 1024 {
		return New(ErrCodeInvalidInput, "node id too long (max 1024 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}
	return nil
}

// ValidateDimensions checks that a container size is finite and positive.
func ValidateDimensions(width, height float64) error {
	if !isFinite(width) || !isFinite(height) {
		return New(ErrCodeInvalidInput, "dimensions must be finite (got %vx%v)", width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive (got %vx%v)", width, height)
	}
	return nil
}

// ValidateRatio checks that a ratio option is finite and strictly positive.
func ValidateRatio(name string, v float64) error {
	if !isFinite(v) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be a positive number (got %v)", name, v)
	}
	return nil
}

// ValidateSort checks a sort order option. Empty means the default.
func ValidateSort(s string) error {
	switch strings.ToLower(s) {
	case "", "asc", "desc", "none":
		return nil
	}
	return New(ErrCodeInvalidConfig, "invalid sort order: %q (must be 'asc', 'desc' or 'none')", s)
}

// ValidateFormat checks that f is one of the allowed output formats.
func ValidateFormat(f string, allowed map[string]bool) error {
	if !allowed[f] {
		return New(ErrCodeInvalidFormat, "invalid format: %s", f)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
