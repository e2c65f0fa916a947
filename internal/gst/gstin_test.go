package gst_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
)

const (
	validMaharashtraGSTIN = "27AAPFU0939F1ZV"
	validKarnatakaGSTIN   = "29AAGCB7383J1Z4"
)

func TestCheckDigit_KnownGSTINs(t *testing.T) {
	for _, id := range []string{validMaharashtraGSTIN, validKarnatakaGSTIN, "33ABCDE1234F1Z7", "05AAACB1234C1ZL"} {
		t.Run(id, func(t *testing.T) {
			assert.NoError(t, gst.ValidateCheckDigit(id, "GSTIN"))
		})
	}
}

func TestValidateCheckDigit_MutatedLastChar(t *testing.T) {
	err := gst.ValidateCheckDigit("27AAPFU0939F1ZW", "GSTIN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "check digit validation has failed")
}

func TestValidateCheckDigit_MutatedBody(t *testing.T) {
	// Changing any body character changes the expected check digit.
	assert.Error(t, gst.ValidateCheckDigit("27AAPFU0938F1ZV", "GSTIN"))
}

func TestValidateCheckDigit_Label(t *testing.T) {
	err := gst.ValidateCheckDigit("27AAPFU0939F1ZA", "GST Transporter ID")
	require.Error(t, err)
	assert.Equal(t,
		"Invalid GST Transporter ID! The check digit validation has failed. Please ensure you've typed the GST Transporter ID correctly.",
		err.Error())
}

func TestValidateCheckDigit_BadInput(t *testing.T) {
	assert.Error(t, gst.ValidateCheckDigit("27AAPFU0939F1Z", "GSTIN"))
	assert.Error(t, gst.ValidateCheckDigit("27aapfu0939f1zv", "GSTIN"))
	assert.Error(t, gst.ValidateCheckDigit("", ""))
}

func TestCheckDigit_EveryPositionMatters(t *testing.T) {
	body := validMaharashtraGSTIN[:14]
	want, ok := gst.CheckDigit(body)
	require.True(t, ok)
	assert.Equal(t, byte('V'), want)
}

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name      string
		in        gst.GSTINInput
		wantErr   string
		wantPatch gst.StatePatch
	}{
		{
			name:      "valid with gst state",
			in:        gst.GSTINInput{GSTState: "Maharashtra", GSTIN: validMaharashtraGSTIN},
			wantPatch: gst.StatePatch{GSTState: "Maharashtra", GSTStateNumber: "27", GSTIN: validMaharashtraGSTIN},
		},
		{
			name:      "state derived from free text",
			in:        gst.GSTINInput{State: "  karnataka ", GSTIN: " 29aagcb7383j1z4 "},
			wantPatch: gst.StatePatch{GSTState: "Karnataka", GSTStateNumber: "29", GSTIN: validKarnatakaGSTIN},
		},
		{
			name:      "empty gstin is valid",
			in:        gst.GSTINInput{GSTState: "Delhi"},
			wantPatch: gst.StatePatch{GSTState: "Delhi", GSTStateNumber: "07"},
		},
		{
			name:      "NA is valid",
			in:        gst.GSTINInput{State: "Goa", GSTIN: "na"},
			wantPatch: gst.StatePatch{GSTState: "Goa", GSTStateNumber: "30", GSTIN: "NA"},
		},
		{
			name:    "wrong length",
			in:      gst.GSTINInput{GSTState: "Maharashtra", GSTIN: "27AAPFU0939F1Z"},
			wantErr: "Invalid GSTIN! A GSTIN must have 15 characters.",
		},
		{
			name:    "bad format",
			in:      gst.GSTINInput{GSTState: "Maharashtra", GSTIN: "2AAAPFU0939F1ZV"},
			wantErr: "Invalid GSTIN! The input you've entered doesn't match the format of GSTIN.",
		},
		{
			name:    "zero entity count rejected by format",
			in:      gst.GSTINInput{GSTState: "Maharashtra", GSTIN: "27AAPFU0939F0ZV"},
			wantErr: "Invalid GSTIN! The input you've entered doesn't match the format of GSTIN.",
		},
		{
			name:    "bad check digit",
			in:      gst.GSTINInput{GSTState: "Maharashtra", GSTIN: "27AAPFU0939F1ZX"},
			wantErr: "Invalid GSTIN! The check digit validation has failed. Please ensure you've typed the GSTIN correctly.",
		},
		{
			name:    "prefix does not match state",
			in:      gst.GSTINInput{GSTState: "Karnataka", GSTIN: validMaharashtraGSTIN},
			wantErr: "Invalid GSTIN! First 2 digits of GSTIN should match with State number 29.",
		},
		{
			name:    "unknown gst state",
			in:      gst.GSTINInput{GSTState: "Atlantis", GSTIN: validMaharashtraGSTIN},
			wantErr: "Invalid GST State Atlantis",
		},
		{
			name:    "unmatched free text leaves state unresolved",
			in:      gst.GSTINInput{State: "Bombay", GSTIN: validMaharashtraGSTIN},
			wantErr: "Invalid GSTIN! First 2 digits of GSTIN should match with State number .",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := gst.ValidateGSTIN(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPatch, patch)
		})
	}
}

func TestValidateGSTIN_Idempotent(t *testing.T) {
	first, err := gst.ValidateGSTIN(gst.GSTINInput{State: "maharashtra", GSTIN: "27aapfu0939f1zv "})
	require.NoError(t, err)

	second, err := gst.ValidateGSTIN(gst.GSTINInput{GSTState: first.GSTState, GSTIN: first.GSTIN})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStateTable(t *testing.T) {
	num, ok := gst.StateNumber("Tamil Nadu")
	require.True(t, ok)
	assert.Equal(t, "33", num)

	name, ok := gst.CanonicalState("WEST BENGAL")
	require.True(t, ok)
	assert.Equal(t, "West Bengal", name)

	_, ok = gst.CanonicalState("")
	assert.False(t, ok)

	states := gst.States()
	seen := make(map[string]bool)
	for _, s := range states {
		assert.Len(t, s.Number, 2, s.State)
		assert.False(t, seen[s.Number], "duplicate code %s", s.Number)
		seen[s.Number] = true
	}
	assert.Equal(t, "Andaman and Nicobar Islands", states[0].State)
}

func TestIsInterState(t *testing.T) {
	assert.True(t, gst.IsInterState(validMaharashtraGSTIN, "29-Karnataka"))
	assert.False(t, gst.IsInterState(validMaharashtraGSTIN, "27-Maharashtra"))
	assert.False(t, gst.IsInterState("", "27-Maharashtra"))
}
