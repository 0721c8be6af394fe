package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn    func(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn    func(ctx context.Context, filter leave.LeaveFilterRequest) ([]leave.LeaveResponse, error)
	getByIDFn   func(ctx context.Context, id, ownerID string) (leave.LeaveResponse, error)
	setStatusFn func(ctx context.Context, id, status string) (leave.LeaveResponse, error)
	balanceFn   func(ctx context.Context, employeeID string) (leave.BalanceResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}

func (f *fakeLeaveService) GetAll(ctx context.Context, filter leave.LeaveFilterRequest) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeLeaveService) GetByID(ctx context.Context, id, ownerID string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id, ownerID)
}

func (f *fakeLeaveService) SetStatus(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
	return f.setStatusFn(ctx, id, status)
}

func (f *fakeLeaveService) Balance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	return f.balanceFn(ctx, employeeID)
}

type allowAll struct{}

func (allowAll) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Role == domain.RoleAdmin || req.Resource == domain.ResourceSelf, nil
}

func newLeaveRouter(svc leave.Service, role, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		c.Set("role", role)
		if employeeID != "" {
			c.Set("employee_id", employeeID)
		}
		c.Next()
	})
	leave.RegisterRoutes(api, leave.NewHandler(svc), allowAll{})
	return r
}

func TestLeaveHandler_SelfSubmitUsesCaller(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, leave.TypeSick, req.Type)
			return leave.LeaveResponse{ID: uuid.NewString(), EmployeeID: eid, TotalDays: 10, PaidDays: 5, UnpaidDays: 5, Status: leave.StatusPending}, nil
		},
	}

	r := newLeaveRouter(svc, domain.RoleEmployee, employeeID)
	w := httptest.NewRecorder()
	body := `{"employee_id":"` + uuid.NewString() + `","type":"Sick","start_date":"2024-03-01","end_date":"2024-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/leave-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var data leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 5, data.UnpaidDays)
}

func TestLeaveHandler_EmployeeCannotUseAdminRoutes(t *testing.T) {
	r := newLeaveRouter(&fakeLeaveService{}, domain.RoleEmployee, uuid.NewString())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave-requests/"+uuid.NewString(), strings.NewReader(`{"status":"Approved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLeaveHandler_AdminCreateRequiresEmployee(t *testing.T) {
	r := newLeaveRouter(&fakeLeaveService{}, domain.RoleAdmin, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(`{"type":"Sick","start_date":"2024-03-01","end_date":"2024-03-02"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestLeaveHandler_InvalidLeaveType(t *testing.T) {
	svc := &fakeLeaveService{
		submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
		},
	}

	r := newLeaveRouter(svc, domain.RoleAdmin, "")
	w := httptest.NewRecorder()
	body := `{"employee_id":"` + uuid.NewString() + `","type":"Personal","start_date":"2024-03-01","end_date":"2024-03-02"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "INVALID_LEAVE_TYPE", env.Error.Code)
}

func TestLeaveHandler_UpdateStatus(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeLeaveService{
		setStatusFn: func(ctx context.Context, lid, status string) (leave.LeaveResponse, error) {
			assert.Equal(t, id, lid)
			assert.Equal(t, leave.StatusApproved, status)
			return leave.LeaveResponse{ID: lid, Status: status}, nil
		},
	}

	r := newLeaveRouter(svc, domain.RoleAdmin, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave-requests/"+id, strings.NewReader(`{"status":"Approved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	r := newLeaveRouter(&fakeLeaveService{}, domain.RoleAdmin, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/leave-requests/"+uuid.NewString(), strings.NewReader(`{"status":"Cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaveHandler_GetAll_ScopedForEmployee(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeLeaveService{
		getAllFn: func(ctx context.Context, filter leave.LeaveFilterRequest) ([]leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, filter.EmployeeID)
			return []leave.LeaveResponse{{ID: "1"}}, nil
		},
	}

	r := newLeaveRouter(svc, domain.RoleEmployee, employeeID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me/leave-requests?employee_id=other", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeaveHandler_Balance(t *testing.T) {
	target := uuid.NewString()
	svc := &fakeLeaveService{
		balanceFn: func(ctx context.Context, eid string) (leave.BalanceResponse, error) {
			assert.Equal(t, target, eid)
			return leave.BalanceResponse{
				EmployeeID: eid,
				Year:       2024,
				Limits:     leave.Limits(),
				Used:       map[string]int{"Vacation": 3},
				Remaining:  map[string]int{"Vacation": 12},
			}, nil
		},
	}

	t.Run("admin reads any employee", func(t *testing.T) {
		r := newLeaveRouter(svc, domain.RoleAdmin, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+target+"/leave-balance", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var data map[string]any
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Contains(t, data, "remaining_leaves")
	})

	t.Run("employee reads own", func(t *testing.T) {
		r := newLeaveRouter(svc, domain.RoleEmployee, target)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me/leave-balance", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
