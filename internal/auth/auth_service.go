package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"
	"go-hrms/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const employeeStatusTerminated = "Terminated"

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID, role string) (*AuthResponse, error)
	EnsureAdmin(ctx context.Context, username, password, name string) error
}

type service struct {
	repo   Repository
	tokens TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if tokens.TTL <= 0 {
		tokens.TTL = 12 * time.Hour
	}
	return &service{repo: repo, tokens: tokens, now: time.Now, logger: l}
}

// Login checks admin accounts first and falls back to employee emails.
func (s *service) Login(ctx context.Context, username, password string) (string, AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if !user.IsActive {
			return "", AuthResponse{}, autherrors.ErrAccountInactive
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			log.Warn("login rejected", zap.String("username", username))
			return "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		token, err := s.generateToken(user.ID.String(), "", domain.RoleAdmin)
		if err != nil {
			return "", AuthResponse{}, autherrors.ErrTokenGeneration
		}
		log.Info("admin login", zap.String("user_id", user.ID.String()))
		return token, adminResponse(user), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", AuthResponse{}, err
	}

	account, err := s.repo.FindEmployeeByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return "", AuthResponse{}, err
	}
	if account.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		log.Warn("login rejected", zap.String("username", username))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if account.Status == employeeStatusTerminated {
		return "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	id := account.ID.String()
	token, err := s.generateToken(id, id, domain.RoleEmployee)
	if err != nil {
		return "", AuthResponse{}, autherrors.ErrTokenGeneration
	}
	log.Info("employee login", zap.String("employee_id", id))
	return token, employeeResponse(account), nil
}

func (s *service) GetMe(ctx context.Context, userID, role string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	if role == domain.RoleAdmin {
		user, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, autherrors.ErrUserNotFound
		}
		resp := adminResponse(user)
		return &resp, nil
	}

	account, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	resp := employeeResponse(account)
	return &resp, nil
}

// EnsureAdmin creates the configured admin account when it is missing. An
// existing account keeps its password.
func (s *service) EnsureAdmin(ctx context.Context, username, password, name string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &User{
		ID:       uuid.New(),
		Username: username,
		Name:     name,
		Password: string(hashed),
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("admin account created", zap.String("username", username))
	return nil
}

func (s *service) generateToken(userID, employeeID, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokens.TTL).Unix(),
	}
	if employeeID != "" {
		claims["employee_id"] = employeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func adminResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     domain.RoleAdmin,
	}
}

func employeeResponse(a *EmployeeAccount) AuthResponse {
	return AuthResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.ID.String(),
		EmployeeCode: a.EmployeeCode,
		Email:        a.Email,
		Name:         a.Name,
		Role:         domain.RoleEmployee,
	}
}
