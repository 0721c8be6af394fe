package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/config"
	"go-hrms/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		AppEnv:                  "test",
		StoreDriver:             config.StoreSQLite,
		SQLitePath:              filepath.Join(dir, "hrms.db"),
		DBRetries:               1,
		JWTSecret:               "test-secret",
		TokenTTL:                time.Hour,
		AdminUsername:           "admin",
		AdminPassword:           "admin123",
		AdminName:               "Administrator",
		DefaultEmployeePassword: "password123",
		UploadDir:               filepath.Join(dir, "uploads"),
		PayrollWorkingDays:      22,
		LoginRatePerSecond:      100,
		LoginRateBurst:          100,
		APIRatePerSecond:        100,
		APIRateBurst:            100,
	}
}

func call(t *testing.T, h http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	code, env := call(t, h, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

func TestBuildApp_EmployeeOnboarding(t *testing.T) {
	apperror.Init()
	a, err := BuildApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	h := a.Router

	adminToken := login(t, h, "admin", "admin123")

	code, env := call(t, h, http.MethodPost, "/api/v1/employees", adminToken,
		`{"name":"Asha Verma","email":"asha@example.com","job_title":"Engineer","department":"Engineering","salary":60000}`)
	require.Equal(t, http.StatusCreated, code, string(env.Data))
	var created struct {
		ID           string `json:"id"`
		EmployeeCode string `json:"employee_code"`
		Documents    struct {
			OfferLetter *string `json:"offer_letter"`
		} `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "EMP001", created.EmployeeCode)
	assert.NotNil(t, created.Documents.OfferLetter)

	employeeToken := login(t, h, "asha@example.com", "password123")

	code, env = call(t, h, http.MethodGet, "/api/v1/me/profile", employeeToken, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), created.ID)

	code, _ = call(t, h, http.MethodGet, "/api/v1/employees/"+created.ID, employeeToken, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, env = call(t, h, http.MethodGet, "/api/v1/reports/dashboard", adminToken, "")
	assert.Equal(t, http.StatusOK, code)
	var dashboard struct {
		TotalEmployees int     `json:"total_employees"`
		AverageSalary  float64 `json:"avg_salary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, 1, dashboard.TotalEmployees)
	assert.Equal(t, 60000.0, dashboard.AverageSalary)
}

func TestBuildApp_AttendanceUpsertAndPayrollMonthGuard(t *testing.T) {
	apperror.Init()
	a, err := BuildApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	h := a.Router

	adminToken := login(t, h, "admin", "admin123")

	code, env := call(t, h, http.MethodPost, "/api/v1/employees", adminToken,
		`{"name":"Ravi Kumar","email":"ravi@example.com","job_title":"Analyst","department":"Finance","salary":48000}`)
	require.Equal(t, http.StatusCreated, code, string(env.Data))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, _ = call(t, h, http.MethodPost, "/api/v1/attendances", adminToken,
		`{"employee_id":"`+created.ID+`","date":"2024-01-15","status":"Present","hours_worked":8}`)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = call(t, h, http.MethodPost, "/api/v1/attendances", adminToken,
		`{"employee_id":"`+created.ID+`","date":"2024-01-15","status":"Late","hours_worked":6.5}`)
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, h, http.MethodGet, "/api/v1/attendances?employee_id="+created.ID, adminToken, "")
	require.Equal(t, http.StatusOK, code)
	var records []struct {
		Date        string  `json:"date"`
		Status      string  `json:"status"`
		HoursWorked float64 `json:"hours_worked"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &records))
	if assert.Len(t, records, 1) {
		assert.Equal(t, "2024-01-15", records[0].Date)
		assert.Equal(t, "Late", records[0].Status)
		assert.Equal(t, 6.5, records[0].HoursWorked)
	}

	code, env = call(t, h, http.MethodPost, "/api/v1/payrolls/generate", adminToken, `{"month":"2024-01"}`)
	require.Equal(t, http.StatusCreated, code)
	var generated struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &generated))
	assert.Equal(t, 1, generated.Count)

	code, env = call(t, h, http.MethodPost, "/api/v1/payrolls/generate", adminToken, `{"month":"2024-01"}`)
	assert.Equal(t, http.StatusConflict, code)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "DUPLICATE_MONTH", env.Error.Code)
	}

	code, env = call(t, h, http.MethodPost, "/api/v1/payrolls/generate", adminToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	}
}

func TestBuildApp_RejectsAnonymous(t *testing.T) {
	apperror.Init()
	a, err := BuildApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	code, env := call(t, a.Router, http.MethodGet, "/api/v1/employees", "", "")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Ok)
}

func TestRunWorker_RequiresSharedStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = config.StoreMemory

	assert.Error(t, RunWorker(cfg))
}
