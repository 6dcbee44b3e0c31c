package dto

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/domain/payroll"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
)

// PeriodLayout is the month format of a payroll period
const PeriodLayout = "2006-01"

type RunPayrollRequest struct {
	Period string `json:"period"`
}

func (r *RunPayrollRequest) Validate() error {
	return ValidatePeriod(r.Period)
}

func ValidatePeriod(period string) error {
	if _, err := time.Parse(PeriodLayout, period); err != nil {
		return ierr.WithError(err).
			WithHint("Payroll period must be in YYYY-MM format").
			WithReportableDetails(map[string]any{"period": period}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type PayrollResponse struct {
	Period  string            `json:"period"`
	Entries []*payroll.Entry  `json:"entries"`
	Totals  payroll.Breakdown `json:"totals"`
}
