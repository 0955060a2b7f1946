package errors

import (
	"math"
	"unicode"
)

// maxTextLength bounds caption input; longer text is almost certainly a
// mistaken file argument rather than a caption.
const maxTextLength = 16 * 1024

// ValidatePointSize checks that a point size is a positive finite number.
func ValidatePointSize(pt float64) error {
	if math.IsNaN(pt) || math.IsInf(pt, 0) {
		return New(ErrCodeInvalidSize, "point size must be a finite number")
	}
	if pt <= 0 {
		return New(ErrCodeInvalidSize, "point size must be positive, got %g", pt)
	}
	return nil
}

// ValidateText checks caption text for length and stray control characters.
// Newlines and tabs are allowed; other control characters are rejected.
func ValidateText(s string) error {
	if len(s) > maxTextLength {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", maxTextLength)
	}
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "text contains control character %U", r)
		}
	}
	return nil
}
