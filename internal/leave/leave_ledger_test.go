package leave_test

import (
	"testing"
	"time"

	"go-hrms/internal/leave"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeBalance_ApprovedVacation(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeVacation, Status: leave.StatusApproved, StartDate: date(2024, 1, 15), EndDate: date(2024, 1, 17)},
	}

	b := leave.ComputeBalance(requests, 2024)

	assert.Equal(t, 3, b.Used[leave.TypeVacation])
	assert.Equal(t, 12, b.Remaining[leave.TypeVacation])
	assert.Equal(t, 5, b.Remaining[leave.TypeSick])
	assert.Equal(t, 3, b.Remaining[leave.TypeEmergency])
	assert.Equal(t, map[string]int{"Sick": 5, "Emergency": 3, "Vacation": 15}, b.Limits)
}

func TestComputeBalance_IgnoresOtherRequests(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeSick, Status: leave.StatusPending, StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 2)},
		{Type: leave.TypeSick, Status: leave.StatusRejected, StartDate: date(2024, 2, 5), EndDate: date(2024, 2, 5)},
		{Type: leave.TypeSick, Status: leave.StatusApproved, StartDate: date(2023, 12, 30), EndDate: date(2024, 1, 2)},
		{Type: "Personal", Status: leave.StatusApproved, StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 4)},
	}

	b := leave.ComputeBalance(requests, 2024)

	assert.Equal(t, 0, b.Used[leave.TypeSick])
	assert.Equal(t, 5, b.Remaining[leave.TypeSick])
	assert.NotContains(t, b.Used, "Personal")
}

func TestComputeBalance_RemainingNeverNegative(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeEmergency, Status: leave.StatusApproved, StartDate: date(2024, 4, 1), EndDate: date(2024, 4, 5)},
	}

	b := leave.ComputeBalance(requests, 2024)

	assert.Equal(t, 5, b.Used[leave.TypeEmergency])
	assert.Equal(t, 0, b.Remaining[leave.TypeEmergency])
}

func TestComputeBalance_SpanCountsToStartYear(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeVacation, Status: leave.StatusApproved, StartDate: date(2024, 12, 30), EndDate: date(2025, 1, 2)},
	}

	assert.Equal(t, 4, leave.ComputeBalance(requests, 2024).Used[leave.TypeVacation])
	assert.Equal(t, 0, leave.ComputeBalance(requests, 2025).Used[leave.TypeVacation])
}

func TestComputeBalance_IsRepeatable(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Type: leave.TypeSick, Status: leave.StatusApproved, StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 2)},
	}

	assert.Equal(t, leave.ComputeBalance(requests, 2024), leave.ComputeBalance(requests, 2024))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name              string
		total, remaining  int
		wantPaid, wantOff int
	}{
		{"exceeds balance", 10, 5, 5, 5},
		{"within balance", 3, 12, 3, 0},
		{"exact balance", 5, 5, 5, 0},
		{"no balance", 4, 0, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid, unpaid := leave.Split(tt.total, tt.remaining)
			assert.Equal(t, tt.wantPaid, paid)
			assert.Equal(t, tt.wantOff, unpaid)
			assert.Equal(t, tt.total, paid+unpaid)
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, leave.DaysInclusive(date(2024, 3, 1), date(2024, 3, 1)))
	assert.Equal(t, 10, leave.DaysInclusive(date(2024, 3, 1), date(2024, 3, 10)))
	assert.Equal(t, 2, leave.DaysInclusive(date(2024, 2, 28), time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)))
}

func TestLimitsReturnsCopy(t *testing.T) {
	l := leave.Limits()
	l[leave.TypeSick] = 100

	assert.Equal(t, 5, leave.Limits()[leave.TypeSick])
	assert.True(t, leave.KnownType(leave.TypeVacation))
	assert.False(t, leave.KnownType("Personal"))
}
