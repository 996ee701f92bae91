package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	calc := Compute(dec("120000"), []Line{
		{ComponentTypeID: "basic", Name: "Basic", Kind: KindAllowance, Percent: dec("50")},
		{ComponentTypeID: "pf", Name: "PF", Kind: KindDeduction, Percent: dec("10")},
	})

	assert.True(t, calc.MonthlySalary.Equal(dec("10000")), calc.MonthlySalary.String())
	assert.True(t, calc.TotalAllowance.Equal(dec("5000")), calc.TotalAllowance.String())
	assert.True(t, calc.TotalDeduction.Equal(dec("1000")), calc.TotalDeduction.String())
	assert.True(t, calc.NetSalary.Equal(dec("4000")), calc.NetSalary.String())

	require.Len(t, calc.Components, 2)
	assert.True(t, calc.Components[0].Amount.Equal(dec("5000")))
	assert.Equal(t, KindDeduction, calc.Components[1].Kind)
}

func TestCompute_RoundsEachComponent(t *testing.T) {
	// monthly = 8333.333..., 12.5% = 1041.6666... -> 1041.67
	calc := Compute(dec("100000"), []Line{
		{Kind: KindAllowance, Percent: dec("12.5")},
	})
	assert.Equal(t, "8333.33", calc.MonthlySalary.StringFixed(2))
	assert.Equal(t, "1041.67", calc.NetSalary.StringFixed(2))
}

func TestCompute_NoLines(t *testing.T) {
	calc := Compute(dec("60000"), nil)
	assert.True(t, calc.NetSalary.IsZero())
	assert.Empty(t, calc.Components)
}

func TestGenerateRequest_Validate(t *testing.T) {
	over := dec("150")
	req := GenerateRequest{
		EmployeeID: "e1",
		Month:      13,
		Year:       2025,
		Components: []ComponentInput{{ComponentTypeID: "c1", Percent: &over}},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "percent must be between 0 and 100")
}
