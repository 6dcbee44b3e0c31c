package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		gross string
		nssf  string
		sha   string
		levy  string
		paye  string
		net   string
	}{
		{"below relief", "15000", "900", "412.5", "225", "0", "13462.5"},
		{"sha minimum", "10000", "600", "300", "150", "0", "8950"},
		{"middle band", "50000", "3000", "1375", "750", "5845.85", "39029.15"},
		{"nssf capped", "100000", "4320", "2750", "1500", "19812.35", "71617.65"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(decimal.RequireFromString(tt.gross))
			assert.True(t, decimal.RequireFromString(tt.nssf).Equal(got.NSSF), "nssf %s", got.NSSF)
			assert.True(t, decimal.RequireFromString(tt.sha).Equal(got.SHA), "sha %s", got.SHA)
			assert.True(t, decimal.RequireFromString(tt.levy).Equal(got.HousingLevy), "levy %s", got.HousingLevy)
			assert.True(t, decimal.RequireFromString(tt.paye).Equal(got.PAYE), "paye %s", got.PAYE)
			assert.True(t, decimal.RequireFromString(tt.net).Equal(got.Net), "net %s", got.Net)
		})
	}
}

func TestCalculateZeroGross(t *testing.T) {
	got := Calculate(decimal.Zero)
	assert.True(t, got.Net.IsZero())
	assert.True(t, got.SHA.IsZero())
	assert.True(t, got.PAYE.IsZero())

	negative := Calculate(decimal.NewFromInt(-5))
	assert.True(t, negative.Gross.IsZero())
}
