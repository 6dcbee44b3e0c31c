package payroll

import (
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/shopspring/decimal"
)

// Entry is the payslip of one staff member for one month
type Entry struct {
	ID        string `bson:"_id" json:"id"`
	StaffID   string `bson:"staff_id" json:"staff_id"`
	StaffName string `bson:"staff_name" json:"staff_name"`
	// Period is the month in YYYY-MM form
	Period string `bson:"period" json:"period"`

	Breakdown `bson:",inline"`

	types.BaseModel `bson:",inline"`
}

// Breakdown holds the statutory deductions of a gross salary, all in KES
type Breakdown struct {
	Gross          decimal.Decimal `bson:"gross" json:"gross"`
	NSSF           decimal.Decimal `bson:"nssf" json:"nssf"`
	SHA            decimal.Decimal `bson:"sha" json:"sha"`
	HousingLevy    decimal.Decimal `bson:"housing_levy" json:"housing_levy"`
	TaxableIncome  decimal.Decimal `bson:"taxable_income" json:"taxable_income"`
	PAYE           decimal.Decimal `bson:"paye" json:"paye"`
	PersonalRelief decimal.Decimal `bson:"personal_relief" json:"personal_relief"`
	Net            decimal.Decimal `bson:"net" json:"net"`
}

// Add sums two breakdowns field by field
func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Gross:          b.Gross.Add(o.Gross),
		NSSF:           b.NSSF.Add(o.NSSF),
		SHA:            b.SHA.Add(o.SHA),
		HousingLevy:    b.HousingLevy.Add(o.HousingLevy),
		TaxableIncome:  b.TaxableIncome.Add(o.TaxableIncome),
		PAYE:           b.PAYE.Add(o.PAYE),
		PersonalRelief: b.PersonalRelief.Add(o.PersonalRelief),
		Net:            b.Net.Add(o.Net),
	}
}
