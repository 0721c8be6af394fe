package app

import (
	"context"
	"errors"
	"fmt"

	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/employee"
	"go-hrms/internal/jobs"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the assembled API process. Close releases what BuildApp opened.
type App struct {
	Router *gin.Engine

	infra infrastructure
	cron  *cron.Cron
}

// BuildApp opens the store, migrates it, seeds the admin account and
// registers every route on a new router.
func BuildApp(cfg config.Config, logger *zap.Logger) (*App, error) {
	// 1. Setup Infrastructure
	gormDB, err := connection.OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	infra := infrastructure{gormDB: gormDB, sqlDB: sqlDB, rdb: rdb}
	if cfg.KafkaBroker != "" {
		// events are relayed by the worker process
		infra.outbox = kafka.NewOutboxRepository(gormDB)
	}

	m, err := newModules(cfg, infra, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := m.auth.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, cfg.AdminName); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	// 2. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.ContextLogger(logger))
	registerRoutes(router, cfg, m, rdb, logger)

	// 3. Scheduled jobs
	c := cron.New()
	if _, err := jobs.RegisterPayrollJob(c, cfg.PayrollCron, m.payroll, logger); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("schedule payroll job: %w", err)
	}
	c.Start()

	return &App{Router: router, infra: infra, cron: c}, nil
}

func (a *App) Close() error {
	<-a.cron.Stop().Done()

	var errs []error
	if a.infra.rdb != nil {
		errs = append(errs, a.infra.rdb.Close())
	}
	errs = append(errs, a.infra.sqlDB.Close())
	return errors.Join(errs...)
}

// Migrate creates every owned table. Read-only views over other features'
// tables are left out.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&counter.Counter{},
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.LeaveRequest{},
		&payroll.PayrollEntry{},
		&kafka.OutboxEvent{},
	)
}
