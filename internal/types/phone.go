package types

import (
	"strings"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/go-playground/validator/v10"
)

const kenyaDialCode = "254"

var contactValidator = validator.New()

// NormalizePhone converts a Kenyan mobile number in any common notation
// (0712..., 712..., +254712..., 254 712 ...) into MSISDN form 2547XXXXXXXX.
// Only ASCII digits are accepted.
func NormalizePhone(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		switch {
		case '0' <= r && r <= '9':
			return r
		case r == ' ', r == '-', r == '+', r == '(', r == ')':
			return -1
		default:
			return 'x'
		}
	}, raw)

	switch {
	case strings.HasPrefix(digits, kenyaDialCode) && len(digits) > 9:
		digits = strings.TrimPrefix(digits, kenyaDialCode)
	case strings.HasPrefix(digits, "0"):
		digits = strings.TrimPrefix(digits, "0")
	}

	if len(digits) != 9 || strings.ContainsRune(digits, 'x') || (digits[0] != '7' && digits[0] != '1') {
		return "", ierr.NewError("invalid phone number").
			WithHint("Enter a valid Safaricom number, for example 0712 345 678").
			WithReportableDetails(map[string]any{"phone": raw}).
			Mark(ierr.ErrValidation)
	}
	return kenyaDialCode + digits, nil
}

// ValidateEmail checks an email address used for card payments and invitations
func ValidateEmail(email string) error {
	if err := contactValidator.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return ierr.WithError(err).
			WithHint("Enter a valid email address").
			WithReportableDetails(map[string]any{"email": email}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
