package leave

import "time"

const (
	TypeSick      = "Sick"
	TypeEmergency = "Emergency"
	TypeVacation  = "Vacation"
)

// limits are annual day allowances per leave type. Types outside this map
// cannot be priced and are rejected on submission.
var limits = map[string]int{
	TypeSick:      5,
	TypeEmergency: 3,
	TypeVacation:  15,
}

// Limits returns a copy of the annual allowances.
func Limits() map[string]int {
	out := make(map[string]int, len(limits))
	for k, v := range limits {
		out[k] = v
	}
	return out
}

// KnownType reports whether t has an annual allowance.
func KnownType(t string) bool {
	_, ok := limits[t]
	return ok
}

type Balance struct {
	Year      int
	Limits    map[string]int
	Used      map[string]int
	Remaining map[string]int
}

// ComputeBalance sums the approved requests starting in year. Requests of
// unknown types are ignored and remaining never drops below zero.
func ComputeBalance(requests []LeaveRequest, year int) Balance {
	b := Balance{
		Year:      year,
		Limits:    Limits(),
		Used:      make(map[string]int, len(limits)),
		Remaining: make(map[string]int, len(limits)),
	}
	for t := range limits {
		b.Used[t] = 0
	}

	for _, r := range requests {
		if r.Status != StatusApproved || r.StartDate.Year() != year {
			continue
		}
		if _, ok := limits[r.Type]; !ok {
			continue
		}
		b.Used[r.Type] += DaysInclusive(r.StartDate, r.EndDate)
	}

	for t, limit := range limits {
		b.Remaining[t] = max(0, limit-b.Used[t])
	}
	return b
}

// Split divides a request between what the balance still covers and the rest.
func Split(totalDays, remaining int) (paid, unpaid int) {
	return min(totalDays, remaining), max(0, totalDays-remaining)
}

// DaysInclusive counts calendar days from start to end, both included.
func DaysInclusive(start, end time.Time) int {
	s := truncateDay(start)
	e := truncateDay(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
