package gst

import (
	"strings"

	"gstkit/internal/domain"
)

const (
	codePointChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	identifierLen  = 15
)

// CheckDigit computes the expected 15th character for the first 14 characters
// of a GSTIN-style identifier. ok is false if a character is outside 0-9A-Z.
func CheckDigit(body string) (digit byte, ok bool) {
	mod := len(codePointChars)
	factor := 1
	total := 0
	for i := 0; i < len(body); i++ {
		idx := strings.IndexByte(codePointChars, body[i])
		if idx < 0 {
			return 0, false
		}
		p := factor * idx
		total += p/mod + p%mod
		if factor == 1 {
			factor = 2
		} else {
			factor = 1
		}
	}
	return codePointChars[(mod-(total%mod))%mod], true
}

// ValidateCheckDigit verifies the last character of a 15-character identifier
// such as a GSTIN or GST transporter ID. label names the identifier in the error.
func ValidateCheckDigit(id, label string) error {
	if label == "" {
		label = "GSTIN"
	}
	if len(id) == identifierLen {
		if want, ok := CheckDigit(id[:identifierLen-1]); ok && id[identifierLen-1] == want {
			return nil
		}
	}
	return domain.NewValidationError(
		"Invalid %[1]s! The check digit validation has failed. Please ensure you've typed the %[1]s correctly.", label)
}
