package jobs

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	payrollJobTimeout = 5 * time.Minute
	monthLayout       = "2006-01"
)

// PayrollGenerator is satisfied by payroll.Service.
type PayrollGenerator interface {
	Generate(ctx context.Context, month string) (payroll.GeneratePayrollResponse, error)
}

// RegisterPayrollJob schedules generation of the current month's payroll.
// An empty spec disables the job.
func RegisterPayrollJob(c *cron.Cron, spec string, generator PayrollGenerator, logger *zap.Logger) (cron.EntryID, error) {
	if spec == "" {
		return 0, nil
	}
	log := logger.Named("jobs.payroll")

	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), payrollJobTimeout)
		defer cancel()
		RunPayroll(ctx, generator, time.Now().Format(monthLayout), log)
	})
	if err != nil {
		return 0, err
	}
	log.Info("payroll job scheduled", zap.String("spec", spec))
	return id, nil
}

// RunPayroll treats a month that was already generated as done.
func RunPayroll(ctx context.Context, generator PayrollGenerator, month string, log *zap.Logger) {
	resp, err := generator.Generate(ctx, month)
	switch {
	case errors.Is(err, payrollerrors.ErrDuplicateMonth):
		log.Info("payroll already generated, nothing to do")
	case err != nil:
		log.Error("scheduled payroll generation failed", zap.Error(err))
	default:
		log.Info("scheduled payroll generated", zap.String("month", resp.Month), zap.Int("count", resp.Count))
	}
}
