package report

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	statusActive  = "Active"
	statusPresent = "Present"
	statusAbsent  = "Absent"
	statusLate    = "Late"
	statusPending = "Pending"

	DashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 30 * time.Second

	dateLayout = "2006-01-02"
)

type Options struct {
	Cache *redis.Client
	Now   func() time.Time
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
	AttendanceSummary(ctx context.Context, filter AttendanceSummaryFilter) ([]AttendanceSummary, error)
	SalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error)
	PayrollByMonth(ctx context.Context) ([]MonthlyPayroll, error)
}

type service struct {
	repo   Repository
	opts   Options
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{repo: repo, opts: opts, logger: l}
}

// Dashboard collapses concurrent requests into one computation and, with a
// cache configured, serves repeats for a short while.
func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if rdb := s.opts.Cache; rdb != nil {
		if cached, err := rdb.Get(ctx, DashboardCacheKey).Bytes(); err == nil {
			var resp DashboardResponse
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, shared := s.sf.Do(DashboardCacheKey, func() (any, error) {
		resp, err := s.computeDashboard(ctx)
		if err != nil {
			return nil, err
		}
		if rdb := s.opts.Cache; rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := rdb.Set(ctx, DashboardCacheKey, payload, dashboardCacheTTL).Err(); err != nil {
					log.Warn("cache dashboard failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		log.Error("dashboard report failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	log.Debug("dashboard report served", zap.Bool("shared", shared))
	return v.(DashboardResponse), nil
}

func (s *service) computeDashboard(ctx context.Context) (DashboardResponse, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	y, m, d := s.opts.Now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	present, err := s.repo.CountAttendance(ctx, today, statusPresent)
	if err != nil {
		return DashboardResponse{}, err
	}
	pending, err := s.repo.CountLeaves(ctx, statusPending)
	if err != nil {
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{
		TotalEmployees: len(employees),
		PresentToday:   int(present),
		PendingLeaves:  int(pending),
	}
	departments := make(map[string]struct{})
	var total int64
	for _, e := range employees {
		if e.Status == statusActive {
			resp.ActiveEmployees++
		}
		departments[e.Department] = struct{}{}
		total += e.BaseSalary
	}
	resp.Departments = len(departments)
	resp.AverageSalary = average(total, len(employees), 2)
	return resp, nil
}

// AttendanceSummary groups records per known employee. Work-from-home and
// half days count toward hours but not toward the rate.
func (s *service) AttendanceSummary(ctx context.Context, filter AttendanceSummaryFilter) ([]AttendanceSummary, error) {
	from, err := optionalDate(filter.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(filter.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListAttendance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	type tally struct {
		present, absent, late int
		hours                 decimal.Decimal
		seen                  bool
	}
	tallies := make(map[string]*tally)
	for _, r := range records {
		t, ok := tallies[r.EmployeeID.String()]
		if !ok {
			t = &tally{}
			tallies[r.EmployeeID.String()] = t
		}
		t.seen = true
		switch r.Status {
		case statusPresent:
			t.present++
		case statusAbsent:
			t.absent++
		case statusLate:
			t.late++
		}
		t.hours = t.hours.Add(decimal.NewFromFloat(r.HoursWorked))
	}

	resp := make([]AttendanceSummary, 0, len(tallies))
	for _, e := range employees {
		t, ok := tallies[e.ID.String()]
		if !ok || !t.seen {
			continue
		}
		hours, _ := t.hours.Float64()
		resp = append(resp, AttendanceSummary{
			EmployeeID:     e.ID.String(),
			EmployeeName:   e.Name,
			Department:     e.Department,
			Present:        t.present,
			Absent:         t.absent,
			Late:           t.late,
			TotalHours:     hours,
			AttendanceRate: percentage(t.present, t.present+t.absent+t.late, 1),
		})
	}
	return resp, nil
}

func (s *service) SalaryByDepartment(ctx context.Context) ([]DepartmentSalary, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	byDept := make(map[string]*DepartmentSalary)
	for _, e := range employees {
		d, ok := byDept[e.Department]
		if !ok {
			d = &DepartmentSalary{Department: e.Department, MinSalary: e.BaseSalary, MaxSalary: e.BaseSalary}
			byDept[e.Department] = d
		}
		d.EmployeeCount++
		d.TotalSalary += e.BaseSalary
		d.MinSalary = min(d.MinSalary, e.BaseSalary)
		d.MaxSalary = max(d.MaxSalary, e.BaseSalary)
	}

	resp := make([]DepartmentSalary, 0, len(byDept))
	for _, d := range byDept {
		d.AverageSalary = average(d.TotalSalary, d.EmployeeCount, 2)
		resp = append(resp, *d)
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Department < resp[j].Department })
	return resp, nil
}

// PayrollByMonth reports deductions with income tax included.
func (s *service) PayrollByMonth(ctx context.Context) ([]MonthlyPayroll, error) {
	rows, err := s.repo.ListPayroll(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyPayroll)
	for _, r := range rows {
		m, ok := byMonth[r.Month]
		if !ok {
			m = &MonthlyPayroll{Month: r.Month}
			byMonth[r.Month] = m
		}
		m.TotalEmployees++
		m.TotalGross += r.GrossSalary
		m.TotalDeductions += r.TotalDeductions + r.IncomeTax
		m.TotalNet += r.NetSalary
	}

	resp := make([]MonthlyPayroll, 0, len(byMonth))
	for _, m := range byMonth {
		resp = append(resp, *m)
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Month < resp[j].Month })
	return resp, nil
}

func average(total int64, count int, places int32) float64 {
	if count == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(count))).Round(places).Float64()
	return v
}

func percentage(part, whole int, places int32) float64 {
	if whole == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(places).
		Float64()
	return v
}

func optionalDate(v, field string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &t, nil
}
