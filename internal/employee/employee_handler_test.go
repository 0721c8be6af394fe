package employee_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	employeeMock "go-hrms/internal/employee/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
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

type staticEnforcer struct{}

func (staticEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.Role == domain.RoleAdmin {
		return true, nil
	}
	return req.Resource == domain.ResourceSelf ||
		(req.Resource == domain.ResourceDirectory && req.Action == domain.ActionRead), nil
}

func newEmployeeRouter(t *testing.T, role, employeeID string) (*gin.Engine, *employeeMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := employeeMock.NewMockService(gomock.NewController(t))

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
		c.Set("role", role)
		if employeeID != "" {
			c.Set("employee_id", employeeID)
		}
		c.Next()
	})
	employee.RegisterRoutes(api, employee.NewHandler(svc), staticEnforcer{})
	return r, svc
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestEmployeeHandler_ListByRole(t *testing.T) {
	t.Run("admin gets full records", func(t *testing.T) {
		r, svc := newEmployeeRouter(t, domain.RoleAdmin, "")
		svc.EXPECT().GetAll(gomock.Any()).Return([]employee.EmployeeResponse{{ID: "1", BaseSalary: 60000}}, nil)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"salary":60000`)
	})

	t.Run("employee gets directory", func(t *testing.T) {
		r, svc := newEmployeeRouter(t, domain.RoleEmployee, uuid.NewString())
		svc.EXPECT().Directory(gomock.Any()).Return([]employee.DirectoryEntry{{ID: "1", Name: "Alice"}}, nil)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "salary")
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		r, _ := newEmployeeRouter(t, domain.RoleAdmin, "")

		w := serve(r, jsonRequest(http.MethodPost, "/api/v1/employees", `{"name":"A","email":"not-an-email","job_title":"X"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("created", func(t *testing.T) {
		r, svc := newEmployeeRouter(t, domain.RoleAdmin, "")
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, int64(45000), *req.BaseSalary)
			return employee.EmployeeResponse{ID: uuid.NewString(), EmployeeCode: "EMP004"}, nil
		})

		w := serve(r, jsonRequest(http.MethodPost, "/api/v1/employees", `{"name":"A","email":"a@example.com","job_title":"X","salary":45000}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var data employee.EmployeeResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "EMP004", data.EmployeeCode)
	})

	t.Run("employee forbidden", func(t *testing.T) {
		r, _ := newEmployeeRouter(t, domain.RoleEmployee, uuid.NewString())

		w := serve(r, jsonRequest(http.MethodPost, "/api/v1/employees", `{}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEmployeeHandler_UpdateRejectsUnknownStatus(t *testing.T) {
	r, _ := newEmployeeRouter(t, domain.RoleAdmin, "")

	w := serve(r, jsonRequest(http.MethodPut, "/api/v1/employees/"+uuid.NewString(), `{"status":"Retired"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_DeleteNotFound(t *testing.T) {
	r, svc := newEmployeeRouter(t, domain.RoleAdmin, "")
	svc.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(employeeerrors.ErrEmployeeNotFound)

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestEmployeeHandler_ProfileUsesCaller(t *testing.T) {
	employeeID := uuid.NewString()
	r, svc := newEmployeeRouter(t, domain.RoleEmployee, employeeID)
	svc.EXPECT().UpdateProfile(gomock.Any(), employeeID, gomock.Any()).DoAndReturn(
		func(_ any, id string, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "Main St 1", *req.Address)
			assert.Nil(t, req.Phone)
			return employee.EmployeeResponse{ID: id, Address: *req.Address}, nil
		})

	w := serve(r, jsonRequest(http.MethodPut, "/api/v1/me/profile", `{"address":"Main St 1","salary":999999}`))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_UploadDocument(t *testing.T) {
	employeeID := uuid.NewString()
	r, svc := newEmployeeRouter(t, domain.RoleEmployee, employeeID)
	svc.EXPECT().UploadDocument(gomock.Any(), employeeID, "resume", "cv.pdf", gomock.Any()).
		Return(employee.UploadDocumentResponse{Reference: "resumes/20240402_080000_cv.pdf", DocumentType: "resume", Message: "Resume uploaded successfully"}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	assert.NoError(t, mw.WriteField("document_type", "resume"))
	part, err := mw.CreateFormFile("file", "cv.pdf")
	assert.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEmployeeHandler_UploadWithoutFile(t *testing.T) {
	r, _ := newEmployeeRouter(t, domain.RoleEmployee, uuid.NewString())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/documents", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_OfferLetterDownload(t *testing.T) {
	employeeID := uuid.NewString()
	r, svc := newEmployeeRouter(t, domain.RoleEmployee, employeeID)
	svc.EXPECT().OfferLetter(gomock.Any(), employeeID).
		Return(employee.OfferLetterFile{Filename: "offer_letter_EMP003.pdf", Content: []byte("%PDF-offer")}, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/me/offer-letter", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "offer_letter_EMP003.pdf")
}

func TestEmployeeHandler_SalaryDetailsAdminOnly(t *testing.T) {
	r, _ := newEmployeeRouter(t, domain.RoleEmployee, uuid.NewString())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+uuid.NewString()+"/salary-details", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
