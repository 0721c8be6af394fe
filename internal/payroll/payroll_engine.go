package payroll

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const (
	DefaultWorkingDays = 22

	FixedInsurance    int64 = 2000
	LatePenalty       int64 = 500
	MaxOtherDeduction int64 = 1000
	HigherTaxFrom     int64 = 30000
)

// AmountSource supplies the discretionary amounts of a payroll run. Both
// methods return a value in [0, max].
type AmountSource interface {
	Bonus(max int64) int64
	OtherDeduction(max int64) int64
}

type randomSource struct{}

// NewRandomSource draws amounts uniformly from math/rand/v2.
func NewRandomSource() AmountSource {
	return randomSource{}
}

func (randomSource) Bonus(max int64) int64 {
	return uniform(max)
}

func (randomSource) OtherDeduction(max int64) int64 {
	return uniform(max)
}

func uniform(max int64) int64 {
	if max <= 0 {
		return 0
	}
	return rand.Int64N(max + 1)
}

// Breakdown is the result of one employee's monthly computation.
type Breakdown struct {
	BasicSalary int64
	HRA         int64
	Allowances  int64
	Overtime    int64
	Bonus       int64
	GrossSalary int64

	PF              int64
	Insurance       int64
	OtherDeduction  int64
	TotalDeductions int64
	IncomeTax       int64
	NetSalary       int64

	WorkingDays     int
	PresentDays     int
	LateDays        int
	AttendanceRatio float64
}

// Eligible reports whether an employee takes part in a payroll run.
func Eligible(emp PayrollEmployee) bool {
	return emp.Status == EmployeeStatusActive && emp.BaseSalary > 0
}

// Compute derives the monthly breakdown from the base salary and the
// attendance statuses recorded in the month. Every percentage is floored.
// The attendance ratio is not clamped, so more records than working days
// scale components above their nominal share.
func Compute(baseSalary int64, attendance []string, workingDays int, src AmountSource) Breakdown {
	if workingDays <= 0 {
		workingDays = DefaultWorkingDays
	}

	var present, late int
	for _, status := range attendance {
		switch status {
		case AttendancePresent:
			present++
		case AttendanceLate:
			present++
			late++
		}
	}

	b := Breakdown{
		WorkingDays: workingDays,
		PresentDays: present,
		LateDays:    late,
	}

	b.BasicSalary = scale(percent(baseSalary, 50), present, workingDays)
	b.HRA = scale(percent(baseSalary, 20), present, workingDays)
	b.Allowances = scale(percent(baseSalary, 15), present, workingDays)

	b.Overtime = max(0, percent(baseSalary, 5)-int64(late)*LatePenalty)
	b.Bonus = src.Bonus(percent(baseSalary, 10))

	b.PF = percent(b.BasicSalary, 12)
	b.Insurance = FixedInsurance
	b.OtherDeduction = src.OtherDeduction(MaxOtherDeduction)
	b.TotalDeductions = b.PF + b.Insurance + b.OtherDeduction

	b.GrossSalary = b.BasicSalary + b.HRA + b.Allowances + b.Overtime + b.Bonus
	b.IncomeTax = IncomeTax(b.GrossSalary)
	b.NetSalary = b.GrossSalary - b.TotalDeductions - b.IncomeTax

	b.AttendanceRatio = RatioPercent(present, workingDays)
	return b
}

// IncomeTax is 10% of gross above HigherTaxFrom, 5% otherwise.
func IncomeTax(gross int64) int64 {
	if gross > HigherTaxFrom {
		return percent(gross, 10)
	}
	return percent(gross, 5)
}

// RatioPercent returns present/working as a percentage rounded to 2 places.
func RatioPercent(present, working int) float64 {
	if working <= 0 {
		return 100
	}
	ratio := decimal.NewFromInt(int64(present)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(working))).
		Round(2)
	f, _ := ratio.Float64()
	return f
}

func percent(amount int64, pct int64) int64 {
	return floorDiv(amount*pct, 100)
}

func scale(amount int64, num, den int) int64 {
	return floorDiv(amount*int64(num), int64(den))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
