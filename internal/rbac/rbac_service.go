package rbac

import (
	"sync"

	"go-hrms/internal/domain"
	"go-hrms/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// DefaultPolicies grants admins everything and employees their own records
// plus the directory.
var DefaultPolicies = []infra.Policy{
	{Role: domain.RoleAdmin, Resource: "*", Action: "*"},
	{Role: domain.RoleEmployee, Resource: domain.ResourceSelf, Action: domain.ActionRead},
	{Role: domain.RoleEmployee, Resource: domain.ResourceSelf, Action: domain.ActionWrite},
	{Role: domain.RoleEmployee, Resource: domain.ResourceDirectory, Action: domain.ActionRead},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// NewDefaultService wires DefaultPolicies into a fresh enforcer.
func NewDefaultService(logger ...*zap.Logger) (Service, error) {
	enforcer, err := infra.NewEnforcer(DefaultPolicies)
	if err != nil {
		return nil, err
	}
	return NewService(enforcer, logger...), nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) ([]domain.PermissionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Resource: rule[1], Action: rule[2]})
	}
	return out, nil
}
