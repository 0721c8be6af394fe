package payroll_test

import (
	"testing"

	"go-hrms/internal/payroll"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixedSource struct {
	bonus, other       int64
	bonusMax, otherMax int64
}

func (f *fixedSource) Bonus(max int64) int64 {
	f.bonusMax = max
	return f.bonus
}

func (f *fixedSource) OtherDeduction(max int64) int64 {
	f.otherMax = max
	return f.other
}

func days(status string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func TestCompute_FullAttendance(t *testing.T) {
	src := &fixedSource{}
	b := payroll.Compute(60000, days(payroll.AttendancePresent, 22), 22, src)

	assert.Equal(t, int64(30000), b.BasicSalary)
	assert.Equal(t, int64(12000), b.HRA)
	assert.Equal(t, int64(9000), b.Allowances)
	assert.Equal(t, int64(3000), b.Overtime)
	assert.Equal(t, int64(0), b.Bonus)
	assert.Equal(t, int64(54000), b.GrossSalary)
	assert.Equal(t, int64(5400), b.IncomeTax)
	assert.Equal(t, int64(3600), b.PF)
	assert.Equal(t, int64(2000), b.Insurance)
	assert.Equal(t, int64(5600), b.TotalDeductions)
	assert.Equal(t, int64(43000), b.NetSalary)
	assert.Equal(t, 22, b.PresentDays)
	assert.Equal(t, 22, b.WorkingDays)
	assert.Equal(t, 100.0, b.AttendanceRatio)

	assert.Equal(t, int64(6000), src.bonusMax)
	assert.Equal(t, int64(1000), src.otherMax)
}

func TestCompute_HalfAttendanceLowerTaxBand(t *testing.T) {
	b := payroll.Compute(60000, days(payroll.AttendancePresent, 11), 22, &fixedSource{})

	assert.Equal(t, int64(15000), b.BasicSalary)
	assert.Equal(t, int64(6000), b.HRA)
	assert.Equal(t, int64(4500), b.Allowances)
	assert.Equal(t, int64(28500), b.GrossSalary)
	assert.Equal(t, int64(1425), b.IncomeTax)
	assert.Equal(t, int64(1800), b.PF)
	assert.Equal(t, int64(23275), b.NetSalary)
	assert.Equal(t, 50.0, b.AttendanceRatio)
}

func TestCompute_LateDaysCountAsPresentAndCutOvertime(t *testing.T) {
	attendance := append(days(payroll.AttendancePresent, 20), days(payroll.AttendanceLate, 2)...)
	attendance = append(attendance, "Absent", "Half Day", "Work From Home")

	b := payroll.Compute(60000, attendance, 22, &fixedSource{bonus: 500, other: 250})

	assert.Equal(t, 22, b.PresentDays)
	assert.Equal(t, 2, b.LateDays)
	assert.Equal(t, int64(2000), b.Overtime)
	assert.Equal(t, int64(500), b.Bonus)
	assert.Equal(t, int64(250), b.OtherDeduction)
	assert.Equal(t, int64(30000+12000+9000+2000+500), b.GrossSalary)
	assert.Equal(t, int64(3600+2000+250), b.TotalDeductions)
	assert.Equal(t, b.GrossSalary-b.TotalDeductions-b.IncomeTax, b.NetSalary)
}

func TestCompute_OvertimeNeverNegative(t *testing.T) {
	b := payroll.Compute(20000, days(payroll.AttendanceLate, 10), 22, &fixedSource{})

	assert.Equal(t, int64(0), b.Overtime)
}

func TestCompute_NoAttendanceKeepsFixedDeductions(t *testing.T) {
	b := payroll.Compute(60000, nil, 22, &fixedSource{})

	assert.Equal(t, int64(0), b.BasicSalary)
	assert.Equal(t, int64(3000), b.Overtime)
	assert.Equal(t, int64(3000), b.GrossSalary)
	assert.Equal(t, int64(150), b.IncomeTax)
	assert.Equal(t, int64(2000), b.TotalDeductions)
	assert.Equal(t, int64(850), b.NetSalary)
	assert.Equal(t, 0.0, b.AttendanceRatio)
}

func TestCompute_RatioAboveOneIsNotClamped(t *testing.T) {
	b := payroll.Compute(44000, days(payroll.AttendancePresent, 23), 22, &fixedSource{})

	assert.Equal(t, int64(23000), b.BasicSalary)
	assert.Equal(t, 104.55, b.AttendanceRatio)
}

func TestIncomeTax(t *testing.T) {
	assert.Equal(t, int64(1500), payroll.IncomeTax(30000))
	assert.Equal(t, int64(3000), payroll.IncomeTax(30001))
	assert.Equal(t, int64(0), payroll.IncomeTax(0))
}

func TestRatioPercent(t *testing.T) {
	assert.Equal(t, 33.33, payroll.RatioPercent(1, 3))
	assert.Equal(t, 66.67, payroll.RatioPercent(2, 3))
	assert.Equal(t, 100.0, payroll.RatioPercent(22, 22))
	assert.Equal(t, 90.91, payroll.RatioPercent(20, 22))
}

func TestRandomSourceStaysInRange(t *testing.T) {
	src := payroll.NewRandomSource()
	for range 200 {
		v := src.Bonus(6000)
		assert.GreaterOrEqual(t, v, int64(0))
		assert.LessOrEqual(t, v, int64(6000))

		o := src.OtherDeduction(1000)
		assert.GreaterOrEqual(t, o, int64(0))
		assert.LessOrEqual(t, o, int64(1000))
	}
	assert.Equal(t, int64(0), src.Bonus(0))
}

func TestEligible(t *testing.T) {
	id := uuid.New()
	assert.True(t, payroll.Eligible(payroll.PayrollEmployee{ID: id, Status: "Active", BaseSalary: 1}))
	assert.False(t, payroll.Eligible(payroll.PayrollEmployee{ID: id, Status: "On Leave", BaseSalary: 50000}))
	assert.False(t, payroll.Eligible(payroll.PayrollEmployee{ID: id, Status: "Active", BaseSalary: 0}))
}
