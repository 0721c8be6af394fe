package app

import (
	"database/sql"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/document"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/rbac"
	"go-hrms/internal/report"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// modules holds every feature service built over one store.
type modules struct {
	rbac       rbac.Service
	auth       auth.Service
	attendance attendance.Service
	employee   employee.Service
	leave      leave.Service
	payroll    payroll.Service
	report     report.Service
}

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	// outbox is nil when no broker is configured.
	outbox kafka.OutboxRepository
}

func newModules(cfg config.Config, infra infrastructure, logger *zap.Logger) (*modules, error) {
	rbacService, err := rbac.NewDefaultService(logger)
	if err != nil {
		return nil, err
	}

	store, err := document.NewLocalStore(cfg.UploadDir, logger)
	if err != nil {
		return nil, err
	}
	renderer := document.NewPDFRenderer()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(infra.gormDB)
	authRepo := auth.NewRepository(infra.gormDB)
	counterRepo := counter.NewRepository(infra.gormDB)
	employeeRepo := employee.NewRepository(infra.gormDB)
	leaveRepo := leave.NewRepository(infra.gormDB)
	payrollRepo := payroll.NewRepository(infra.gormDB)
	reportRepo := report.NewRepository(infra.gormDB)

	// --- Services ---
	return &modules{
		rbac: rbacService,
		auth: auth.NewService(authRepo, auth.TokenConfig{
			Secret: cfg.JWTSecret,
			TTL:    cfg.TokenTTL,
		}, logger),
		attendance: attendance.NewService(infra.sqlDB, attendanceRepo, attendance.Options{}, logger),
		employee: employee.NewService(infra.sqlDB, employeeRepo, counterRepo, employee.Options{
			DefaultPassword: cfg.DefaultEmployeePassword,
			Cache:           infra.rdb,
			Outbox:          infra.outbox,
			Store:           store,
			Renderer:        renderer,
		}, logger),
		leave: leave.NewService(infra.sqlDB, leaveRepo, leave.Options{
			StrictTransitions: cfg.StrictLeaveTransitions,
		}, logger),
		payroll: payroll.NewService(infra.sqlDB, payrollRepo, payroll.Options{
			WorkingDays:       cfg.PayrollWorkingDays,
			StrictTransitions: cfg.StrictPayrollTransitions,
			Renderer:          renderer,
			Store:             store,
			Outbox:            infra.outbox,
		}, logger),
		report: report.NewService(reportRepo, report.Options{Cache: infra.rdb}, logger),
	}, nil
}

func registerRoutes(router *gin.Engine, cfg config.Config, m *modules, rdb *redis.Client, logger *zap.Logger) {
	// --- Handlers ---
	authHandler := auth.NewHandler(m.auth, auth.CookieConfig{
		Secure: cfg.IsProduction(),
		MaxAge: cfg.TokenTTL,
	})
	attendanceHandler := attendance.NewHandler(m.attendance, logger)
	employeeHandler := employee.NewHandler(m.employee, logger)
	leaveHandler := leave.NewHandler(m.leave, logger)
	payrollHandler := payroll.NewHandler(m.payroll, logger)
	reportHandler := report.NewHandler(m.report, logger)
	rbacHandler := rbac.NewHandler(m.rbac)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, authHandler, cfg.JWTSecret, rate.Limit(cfg.LoginRatePerSecond), cfg.LoginRateBurst)

	protected := api.Group("",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimitByUser(rate.Limit(cfg.APIRatePerSecond), cfg.APIRateBurst),
	)
	{
		attendance.RegisterRoutes(protected, attendanceHandler, m.rbac)
		employee.RegisterRoutes(protected, employeeHandler, m.rbac)
		leave.RegisterRoutes(protected, leaveHandler, m.rbac)
		payroll.RegisterRoutes(protected, payrollHandler, m.rbac, rdb)
		report.RegisterRoutes(protected, reportHandler, m.rbac)
		rbac.RegisterRoutes(protected, rbacHandler)
	}
}
