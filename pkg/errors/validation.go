package errors

import (
	"strings"
	"unicode"
)

// MaxDPI bounds the output resolution. Beyond this a default-sized figure
// produces a raster of several hundred megapixels.
const MaxDPI = 2400

// ValidateFilename validates the base name of an output file (without
// extension). It must be a simple name that resolves inside the target
// directory.
//
// Validation rules:
//   - Name cannot be empty or longer than 200 characters
//   - No control characters or null bytes
//   - No path separators (/ or \)
//   - Not "." or ".."
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}

	const maxFilenameLength = 200
	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidInput, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "filename cannot be %q", name)
	}

	return nil
}

// ValidateDPI checks that dpi is a usable output resolution.
func ValidateDPI(dpi int) error {
	if dpi <= 0 || dpi > MaxDPI {
		return New(ErrCodeInvalidInput, "dpi must be between 1 and %d, got %d", MaxDPI, dpi)
	}
	return nil
}

// ValidateFigureSize checks figure dimensions given in inches.
func ValidateFigureSize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return New(ErrCodeInvalidInput, "figure size must be positive, got %gx%g in", width, height)
	}
	const maxInches = 100
	if width > maxInches || height > maxInches {
		return New(ErrCodeInvalidInput, "figure size too large (max %d in per side)", maxInches)
	}
	return nil
}
