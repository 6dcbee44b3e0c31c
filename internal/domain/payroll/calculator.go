package payroll

import (
	"github.com/shopspring/decimal"
)

var (
	nssfRate              = decimal.RequireFromString("0.06")
	nssfLowerLimit        = decimal.NewFromInt(8000)
	nssfUpperLimit        = decimal.NewFromInt(72000)
	shaRate               = decimal.RequireFromString("0.0275")
	shaMinimum            = decimal.NewFromInt(300)
	housingLevyRate       = decimal.RequireFromString("0.015")
	monthlyPersonalRelief = decimal.NewFromInt(2400)
)

type band struct {
	upTo decimal.Decimal
	rate decimal.Decimal
}

// monthly PAYE bands, the last band is open ended
var payeBands = []band{
	{upTo: decimal.NewFromInt(24000), rate: decimal.RequireFromString("0.10")},
	{upTo: decimal.NewFromInt(32333), rate: decimal.RequireFromString("0.25")},
	{upTo: decimal.NewFromInt(500000), rate: decimal.RequireFromString("0.30")},
	{upTo: decimal.NewFromInt(800000), rate: decimal.RequireFromString("0.325")},
	{upTo: decimal.Zero, rate: decimal.RequireFromString("0.35")},
}

// Calculate returns the statutory deductions for a monthly gross salary.
// Amounts are rounded to cents. A negative gross is treated as zero.
func Calculate(gross decimal.Decimal) Breakdown {
	if gross.IsNegative() {
		gross = decimal.Zero
	}

	nssf := nssfContribution(gross)
	sha := decimal.Max(gross.Mul(shaRate), shaMinimum).Round(2)
	if gross.IsZero() {
		sha = decimal.Zero
	}
	levy := gross.Mul(housingLevyRate).Round(2)

	taxable := decimal.Max(gross.Sub(nssf).Sub(sha).Sub(levy), decimal.Zero)
	tax := bandedTax(taxable)
	paye := decimal.Max(tax.Sub(monthlyPersonalRelief), decimal.Zero).Round(2)

	return Breakdown{
		Gross:          gross.Round(2),
		NSSF:           nssf,
		SHA:            sha,
		HousingLevy:    levy,
		TaxableIncome:  taxable.Round(2),
		PAYE:           paye,
		PersonalRelief: decimal.Min(tax, monthlyPersonalRelief).Round(2),
		Net:            gross.Sub(nssf).Sub(sha).Sub(levy).Sub(paye).Round(2),
	}
}

func nssfContribution(gross decimal.Decimal) decimal.Decimal {
	tierOne := decimal.Min(gross, nssfLowerLimit).Mul(nssfRate)
	tierTwo := decimal.Zero
	if gross.GreaterThan(nssfLowerLimit) {
		tierTwo = decimal.Min(gross, nssfUpperLimit).Sub(nssfLowerLimit).Mul(nssfRate)
	}
	return tierOne.Add(tierTwo).Round(2)
}

func bandedTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range payeBands {
		if !taxable.GreaterThan(lower) {
			break
		}
		upper := taxable
		if !b.upTo.IsZero() && taxable.GreaterThan(b.upTo) {
			upper = b.upTo
		}
		tax = tax.Add(upper.Sub(lower).Mul(b.rate))
		lower = upper
		if b.upTo.IsZero() || !taxable.GreaterThan(b.upTo) {
			break
		}
	}
	return tax
}
