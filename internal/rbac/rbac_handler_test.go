package rbac_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/domain"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiResponse struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

func newRouter(t *testing.T, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, err := rbac.NewDefaultService()
	assert.NoError(t, err)

	r := gin.New()
	api := r.Group("", func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	})
	rbac.RegisterRoutes(api, rbac.NewHandler(service))
	return r
}

func TestHandler_Check(t *testing.T) {
	r := newRouter(t, domain.RoleEmployee)

	body, _ := json.Marshal(map[string]string{"resource": "payroll", "action": "read"})
	req := httptest.NewRequest(http.MethodPost, "/rbac/check", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res apiResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	var data domain.EnforceResponse
	assert.NoError(t, json.Unmarshal(res.Data, &data))
	assert.False(t, data.Allowed)

	req = httptest.NewRequest(http.MethodPost, "/rbac/check", bytes.NewBufferString(`{"resource":""}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Permissions(t *testing.T) {
	r := newRouter(t, domain.RoleAdmin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var res apiResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	var perms []domain.PermissionResponse
	assert.NoError(t, json.Unmarshal(res.Data, &perms))
	assert.Equal(t, []domain.PermissionResponse{{Resource: "*", Action: "*"}}, perms)
}
