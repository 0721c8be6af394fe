package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-hrms/internal/report"
	"go-hrms/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var reportNow = time.Date(2024, 5, 20, 11, 30, 0, 0, time.UTC)

type fakeReportRepository struct {
	mu         sync.Mutex
	employees  []report.EmployeeRow
	attendance []report.AttendanceRow
	payroll    []report.PayrollRow
	present    int64
	pending    int64
	listCalls  int
	gotFrom    *time.Time
	gotTo      *time.Time
	gotDate    time.Time
	listErr    error
}

func (f *fakeReportRepository) ListEmployees(ctx context.Context) ([]report.EmployeeRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.employees, f.listErr
}

func (f *fakeReportRepository) ListAttendance(ctx context.Context, from, to *time.Time) ([]report.AttendanceRow, error) {
	f.gotFrom, f.gotTo = from, to
	return f.attendance, nil
}

func (f *fakeReportRepository) CountAttendance(ctx context.Context, date time.Time, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotDate = date
	if status != "Present" {
		return 0, nil
	}
	return f.present, nil
}

func (f *fakeReportRepository) CountLeaves(ctx context.Context, status string) (int64, error) {
	if status != "Pending" {
		return 0, nil
	}
	return f.pending, nil
}

func (f *fakeReportRepository) ListPayroll(ctx context.Context) ([]report.PayrollRow, error) {
	return f.payroll, nil
}

var (
	aliceID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	carolID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func sampleEmployees() []report.EmployeeRow {
	return []report.EmployeeRow{
		{ID: aliceID, Name: "Alice", Department: "Engineering", Status: "Active", BaseSalary: 90000},
		{ID: bobID, Name: "Bob", Department: "Engineering", Status: "On Leave", BaseSalary: 70001},
		{ID: carolID, Name: "Carol", Department: "Finance", Status: "Active", BaseSalary: 60000},
	}
}

func TestReportService_Dashboard(t *testing.T) {
	repo := &fakeReportRepository{employees: sampleEmployees(), present: 2, pending: 4}
	svc := report.NewService(repo, report.Options{Now: func() time.Time { return reportNow }})

	got, err := svc.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, report.DashboardResponse{
		TotalEmployees:  3,
		ActiveEmployees: 2,
		Departments:     2,
		AverageSalary:   73333.67,
		PresentToday:    2,
		PendingLeaves:   4,
	}, got)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), repo.gotDate)
}

func TestReportService_DashboardEmpty(t *testing.T) {
	svc := report.NewService(&fakeReportRepository{}, report.Options{Now: func() time.Time { return reportNow }})

	got, err := svc.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, report.DashboardResponse{}, got)
}

func TestReportService_DashboardCache(t *testing.T) {
	t.Run("miss stores the computed dashboard", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeReportRepository{employees: sampleEmployees()[:1], present: 1}
		svc := report.NewService(repo, report.Options{Cache: rdb, Now: func() time.Time { return reportNow }})

		want := report.DashboardResponse{TotalEmployees: 1, ActiveEmployees: 1, Departments: 1, AverageSalary: 90000, PresentToday: 1}
		payload, _ := json.Marshal(want)
		redisMock.ExpectGet(report.DashboardCacheKey).RedisNil()
		redisMock.ExpectSet(report.DashboardCacheKey, payload, 30*time.Second).SetVal("OK")

		got, err := svc.Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("hit skips the repository", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeReportRepository{}
		svc := report.NewService(repo, report.Options{Cache: rdb})

		cached := report.DashboardResponse{TotalEmployees: 9, PendingLeaves: 3}
		payload, _ := json.Marshal(cached)
		redisMock.ExpectGet(report.DashboardCacheKey).SetVal(string(payload))

		got, err := svc.Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, cached, got)
		assert.Zero(t, repo.listCalls)
	})
}

func TestReportService_DashboardError(t *testing.T) {
	repo := &fakeReportRepository{listErr: errors.New("db down")}
	svc := report.NewService(repo, report.Options{})

	_, err := svc.Dashboard(context.Background())

	assert.EqualError(t, err, "db down")
}

func TestReportService_AttendanceSummary(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	repo := &fakeReportRepository{
		employees: sampleEmployees(),
		attendance: []report.AttendanceRow{
			{EmployeeID: aliceID, Date: day(1), Status: "Present", HoursWorked: 8},
			{EmployeeID: aliceID, Date: day(2), Status: "Late", HoursWorked: 7.5},
			{EmployeeID: aliceID, Date: day(3), Status: "Absent"},
			{EmployeeID: aliceID, Date: day(4), Status: "Work From Home", HoursWorked: 8},
			{EmployeeID: carolID, Date: day(1), Status: "Half Day", HoursWorked: 4},
			{EmployeeID: uuid.New(), Date: day(1), Status: "Present", HoursWorked: 8},
		},
	}
	svc := report.NewService(repo, report.Options{})

	got, err := svc.AttendanceSummary(context.Background(), report.AttendanceSummaryFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"})

	assert.NoError(t, err)
	assert.Equal(t, []report.AttendanceSummary{
		{EmployeeID: aliceID.String(), EmployeeName: "Alice", Department: "Engineering", Present: 1, Absent: 1, Late: 1, TotalHours: 23.5, AttendanceRate: 33.3},
		{EmployeeID: carolID.String(), EmployeeName: "Carol", Department: "Finance", TotalHours: 4, AttendanceRate: 0},
	}, got)
	assert.Equal(t, day(1), *repo.gotFrom)
	assert.Equal(t, day(31), *repo.gotTo)
}

func TestReportService_AttendanceSummaryInvalidDate(t *testing.T) {
	svc := report.NewService(&fakeReportRepository{}, report.Options{})

	_, err := svc.AttendanceSummary(context.Background(), report.AttendanceSummaryFilter{EndDate: "31/05/2024"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "end_date is invalid", appErr.Message)
}

func TestReportService_SalaryByDepartment(t *testing.T) {
	svc := report.NewService(&fakeReportRepository{employees: sampleEmployees()}, report.Options{})

	got, err := svc.SalaryByDepartment(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []report.DepartmentSalary{
		{Department: "Engineering", EmployeeCount: 2, TotalSalary: 160001, AverageSalary: 80000.5, MinSalary: 70001, MaxSalary: 90000},
		{Department: "Finance", EmployeeCount: 1, TotalSalary: 60000, AverageSalary: 60000, MinSalary: 60000, MaxSalary: 60000},
	}, got)
}

func TestReportService_PayrollByMonth(t *testing.T) {
	repo := &fakeReportRepository{payroll: []report.PayrollRow{
		{EmployeeID: aliceID, Month: "2024-04", GrossSalary: 100000, TotalDeductions: 8000, IncomeTax: 2000, NetSalary: 90000},
		{EmployeeID: bobID, Month: "2024-04", GrossSalary: 50000, TotalDeductions: 4000, IncomeTax: 0, NetSalary: 46000},
		{EmployeeID: aliceID, Month: "2024-03", GrossSalary: 100000, TotalDeductions: 8000, IncomeTax: 2000, NetSalary: 90000},
	}}
	svc := report.NewService(repo, report.Options{})

	got, err := svc.PayrollByMonth(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []report.MonthlyPayroll{
		{Month: "2024-03", TotalEmployees: 1, TotalGross: 100000, TotalDeductions: 10000, TotalNet: 90000},
		{Month: "2024-04", TotalEmployees: 2, TotalGross: 150000, TotalDeductions: 14000, TotalNet: 136000},
	}, got)
}
