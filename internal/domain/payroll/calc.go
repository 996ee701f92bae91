package payroll

import "github.com/shopspring/decimal"

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Line is one component to apply.
type Line struct {
	ComponentTypeID string
	Name            string
	Kind            ComponentKind
	Percent         decimal.Decimal
}

// Calculation is the outcome of applying lines to an annual salary.
type Calculation struct {
	MonthlySalary  decimal.Decimal
	TotalAllowance decimal.Decimal
	TotalDeduction decimal.Decimal
	NetSalary      decimal.Decimal
	Components     []RecordComponent
}

// Compute derives monthly salary as annual/12 and each component amount as
// percent * monthly / 100, rounded to 2 places. Net is allowances minus
// deductions.
func Compute(annualSalary decimal.Decimal, lines []Line) Calculation {
	monthly := annualSalary.Div(twelve)
	calc := Calculation{
		MonthlySalary:  monthly.Round(2),
		TotalAllowance: decimal.Zero,
		TotalDeduction: decimal.Zero,
		Components:     make([]RecordComponent, 0, len(lines)),
	}

	for _, l := range lines {
		amount := l.Percent.Mul(monthly).Div(hundred).Round(2)
		switch l.Kind {
		case KindAllowance:
			calc.TotalAllowance = calc.TotalAllowance.Add(amount)
		case KindDeduction:
			calc.TotalDeduction = calc.TotalDeduction.Add(amount)
		}
		calc.Components = append(calc.Components, RecordComponent{
			ComponentTypeID: l.ComponentTypeID,
			Name:            l.Name,
			Kind:            l.Kind,
			Percent:         l.Percent,
			Amount:          amount,
		})
	}

	calc.NetSalary = calc.TotalAllowance.Sub(calc.TotalDeduction)
	return calc
}
