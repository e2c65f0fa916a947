package gst

import (
	"regexp"
	"strings"

	"gstkit/internal/domain"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{4}[0-9A-Z]{1}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}[1-9A-Z]{1}[0-9A-Z]{1}$`)

// Unregistered is the GSTIN value used for parties without GST registration.
const Unregistered = "NA"

// GSTINInput is a record carrying a GSTIN and the state it is declared for.
type GSTINInput struct {
	GSTState string `json:"gst_state"`
	State    string `json:"state"`
	GSTIN    string `json:"gstin"`
}

// StatePatch holds the values a caller should write back after validation.
type StatePatch struct {
	GSTState       string `json:"gst_state"`
	GSTStateNumber string `json:"gst_state_number"`
	GSTIN          string `json:"gstin"`
}

// ValidateGSTIN normalizes and validates a GSTIN against its declared state.
// An empty GSTIN or "NA" is valid since registration is optional.
func ValidateGSTIN(in GSTINInput) (StatePatch, error) {
	patch := StatePatch{GSTState: in.GSTState, GSTIN: in.GSTIN}

	if in.GSTState != "" {
		num, ok := StateNumber(in.GSTState)
		if !ok {
			return patch, domain.NewValidationError("Invalid GST State %s", in.GSTState)
		}
		patch.GSTStateNumber = num
	}
	if in.GSTIN == "" {
		return patch, nil
	}

	patch.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if region, ok := ResolveState(in.GSTState, in.State); ok {
		patch.GSTState = region.State
		patch.GSTStateNumber = region.Number
	}

	if patch.GSTIN == "" || patch.GSTIN == Unregistered {
		return patch, nil
	}

	if len(patch.GSTIN) != identifierLen {
		return patch, domain.NewValidationError("Invalid GSTIN! A GSTIN must have 15 characters.")
	}
	if !gstinPattern.MatchString(patch.GSTIN) {
		return patch, domain.NewValidationError("Invalid GSTIN! The input you've entered doesn't match the format of GSTIN.")
	}
	if err := ValidateCheckDigit(patch.GSTIN, "GSTIN"); err != nil {
		return patch, err
	}
	if patch.GSTStateNumber != patch.GSTIN[:2] {
		return patch, domain.NewValidationError(
			"Invalid GSTIN! First 2 digits of GSTIN should match with State number %s.", patch.GSTStateNumber)
	}
	return patch, nil
}

// IsInterState reports whether two GSTINs or place-of-supply values carry
// different 2-digit state prefixes.
func IsInterState(a, b string) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return a[:2] != b[:2]
}
