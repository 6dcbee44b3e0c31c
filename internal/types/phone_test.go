package types

import (
	"testing"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"local with leading zero", "0712345678", "254712345678", false},
		{"spaces and dashes", "0712 345-678", "254712345678", false},
		{"international with plus", "+254712345678", "254712345678", false},
		{"international without plus", "254 112 345 678", "254112345678", false},
		{"nine significant digits", "712345678", "254712345678", false},
		{"too short", "07123456", "", true},
		{"too long", "07123456789", "", true},
		{"landline prefix", "0201234567", "", true},
		{"letters", "0712abc678", "", true},
		{"empty", "", "", true},
		{"arabic-indic digits", "7١٢٣٤", "", true},
		{"nine arabic-indic digits", "٧١٢٣٤٥٦٧٨", "", true},
		{"fullwidth digit", "0７12345678", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("billing@nairobi-clinic.co.ke"))
	assert.True(t, ierr.IsValidation(ValidateEmail("not-an-email")))
	assert.True(t, ierr.IsValidation(ValidateEmail("")))
}

func TestParseVerificationStatus(t *testing.T) {
	for raw, want := range map[string]VerificationStatus{
		"":         VerificationStatusUnverified,
		"pending":  VerificationStatusPending,
		"approved": VerificationStatusVerified,
		"Active":   VerificationStatusVerified,
		"VERIFIED": VerificationStatusVerified,
		"rejected": VerificationStatusRejected,
	} {
		got, err := ParseVerificationStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseVerificationStatus("maybe")
	assert.True(t, ierr.IsValidation(err))
}

func TestCapabilitiesFor(t *testing.T) {
	assert.ElementsMatch(t, AllCapabilities, CapabilitiesFor(SystemRoleAdmin))
	assert.Empty(t, CapabilitiesFor(SystemRoleEmployee))

	caps := CapabilitiesFor(SystemRoleEmployee, CapabilityDocumentsManage, CapabilityDocumentsManage)
	assert.Equal(t, []Capability{CapabilityDocumentsManage}, caps)

	assert.NoError(t, ValidateCapabilities([]Capability{CapabilityStaffView}))
	assert.True(t, ierr.IsValidation(ValidateCapabilities([]Capability{"staff.fire"})))
	assert.True(t, ierr.IsValidation(ValidateCapabilities([]Capability{CapabilityStaffView, CapabilityStaffView})))
}
