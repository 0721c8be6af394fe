package rbac

import (
	"testing"

	"go-hrms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRBACService_Enforce(t *testing.T) {
	service, err := NewDefaultService()
	assert.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"admin writes payroll", domain.RoleAdmin, domain.ResourcePayroll, domain.ActionWrite, true},
		{"admin reads reports", domain.RoleAdmin, domain.ResourceReport, domain.ActionRead, true},
		{"employee reads self", domain.RoleEmployee, domain.ResourceSelf, domain.ActionRead, true},
		{"employee writes self", domain.RoleEmployee, domain.ResourceSelf, domain.ActionWrite, true},
		{"employee reads payroll", domain.RoleEmployee, domain.ResourcePayroll, domain.ActionRead, false},
		{"employee reads employees", domain.RoleEmployee, domain.ResourceEmployee, domain.ActionRead, false},
		{"employee reads directory", domain.RoleEmployee, domain.ResourceDirectory, domain.ActionRead, true},
		{"employee writes directory", domain.RoleEmployee, domain.ResourceDirectory, domain.ActionWrite, false},
		{"unknown role", "guest", domain.ResourceSelf, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := service.Enforce(domain.EnforceRequest{
				Role:     tt.role,
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestRBACService_Permissions(t *testing.T) {
	service, err := NewDefaultService()
	assert.NoError(t, err)

	perms, err := service.Permissions(domain.RoleEmployee)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []domain.PermissionResponse{
		{Resource: domain.ResourceSelf, Action: domain.ActionRead},
		{Resource: domain.ResourceSelf, Action: domain.ActionWrite},
		{Resource: domain.ResourceDirectory, Action: domain.ActionRead},
	}, perms)

	perms, err = service.Permissions("guest")
	assert.NoError(t, err)
	assert.Empty(t, perms)
}
