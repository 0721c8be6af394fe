package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/report"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type fakeReportService struct {
	dashboardFn  func(ctx context.Context) (report.DashboardResponse, error)
	attendanceFn func(ctx context.Context, filter report.AttendanceSummaryFilter) ([]report.AttendanceSummary, error)
	salaryFn     func(ctx context.Context) ([]report.DepartmentSalary, error)
	payrollFn    func(ctx context.Context) ([]report.MonthlyPayroll, error)
}

func (f *fakeReportService) Dashboard(ctx context.Context) (report.DashboardResponse, error) {
	return f.dashboardFn(ctx)
}

func (f *fakeReportService) AttendanceSummary(ctx context.Context, filter report.AttendanceSummaryFilter) ([]report.AttendanceSummary, error) {
	return f.attendanceFn(ctx, filter)
}

func (f *fakeReportService) SalaryByDepartment(ctx context.Context) ([]report.DepartmentSalary, error) {
	return f.salaryFn(ctx)
}

func (f *fakeReportService) PayrollByMonth(ctx context.Context) ([]report.MonthlyPayroll, error) {
	return f.payrollFn(ctx)
}

type adminOnly struct{}

func (adminOnly) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Role == domain.RoleAdmin, nil
}

func newReportRouter(svc report.Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", "9d3c1f6e-7b1a-4f63-9a55-0c3e2b4d5f60")
		c.Set("role", role)
		c.Next()
	})
	report.RegisterRoutes(api, report.NewHandler(svc), adminOnly{})
	return r
}

func get(r http.Handler, path string) (*httptest.ResponseRecorder, apiEnvelope) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var env apiEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestReportHandler_Dashboard(t *testing.T) {
	svc := &fakeReportService{
		dashboardFn: func(ctx context.Context) (report.DashboardResponse, error) {
			return report.DashboardResponse{TotalEmployees: 5, AverageSalary: 51234.5}, nil
		},
	}

	w, env := get(newReportRouter(svc, domain.RoleAdmin), "/api/v1/reports/dashboard")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Ok)
	var got map[string]any
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, float64(5), got["total_employees"])
	assert.Equal(t, 51234.5, got["avg_salary"])
}

func TestReportHandler_EmployeeForbidden(t *testing.T) {
	r := newReportRouter(&fakeReportService{}, domain.RoleEmployee)

	for _, path := range []string{"/reports/dashboard", "/reports/attendance", "/reports/salary", "/reports/payroll"} {
		t.Run(path, func(t *testing.T) {
			w, _ := get(r, "/api/v1"+path)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestReportHandler_AttendancePassesDateRange(t *testing.T) {
	svc := &fakeReportService{
		attendanceFn: func(ctx context.Context, filter report.AttendanceSummaryFilter) ([]report.AttendanceSummary, error) {
			assert.Equal(t, report.AttendanceSummaryFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"}, filter)
			return []report.AttendanceSummary{{EmployeeName: "Alice", Present: 3, AttendanceRate: 75}}, nil
		},
	}

	w, env := get(newReportRouter(svc, domain.RoleAdmin), "/api/v1/reports/attendance?start_date=2024-05-01&end_date=2024-05-31")

	assert.Equal(t, http.StatusOK, w.Code)
	var got []report.AttendanceSummary
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
}

func TestReportHandler_AttendanceInvalidDate(t *testing.T) {
	svc := &fakeReportService{
		attendanceFn: func(ctx context.Context, filter report.AttendanceSummaryFilter) ([]report.AttendanceSummary, error) {
			return nil, apperror.InvalidField("start_date")
		},
	}

	w, env := get(newReportRouter(svc, domain.RoleAdmin), "/api/v1/reports/attendance?start_date=yesterday")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, env.Error.Code)
}

func TestReportHandler_SalaryAndPayroll(t *testing.T) {
	svc := &fakeReportService{
		salaryFn: func(ctx context.Context) ([]report.DepartmentSalary, error) {
			return []report.DepartmentSalary{{Department: "Finance", EmployeeCount: 1}}, nil
		},
		payrollFn: func(ctx context.Context) ([]report.MonthlyPayroll, error) {
			return []report.MonthlyPayroll{{Month: "2024-04", TotalNet: 1000}}, nil
		},
	}
	r := newReportRouter(svc, domain.RoleAdmin)

	w, env := get(r, "/api/v1/reports/salary")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"department":"Finance"`)

	w, env = get(r, "/api/v1/reports/payroll")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total_net":1000`)
}
