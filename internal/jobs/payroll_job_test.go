package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type generatorFunc func(ctx context.Context, month string) (payroll.GeneratePayrollResponse, error)

func (f generatorFunc) Generate(ctx context.Context, month string) (payroll.GeneratePayrollResponse, error) {
	return f(ctx, month)
}

func TestRegisterPayrollJob(t *testing.T) {
	calls := 0
	gen := generatorFunc(func(ctx context.Context, month string) (payroll.GeneratePayrollResponse, error) {
		calls++
		assert.Equal(t, time.Now().Format("2006-01"), month)
		return payroll.GeneratePayrollResponse{Month: "2024-06", Count: 3}, nil
	})

	t.Run("empty spec disables the job", func(t *testing.T) {
		c := cron.New()
		id, err := RegisterPayrollJob(c, "", gen, zap.NewNop())
		assert.NoError(t, err)
		assert.Zero(t, id)
		assert.Empty(t, c.Entries())
	})

	t.Run("invalid spec", func(t *testing.T) {
		_, err := RegisterPayrollJob(cron.New(), "every full moon", gen, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("scheduled entry generates the current month", func(t *testing.T) {
		c := cron.New()
		id, err := RegisterPayrollJob(c, "0 1 1 * *", gen, zap.NewNop())
		assert.NoError(t, err)

		c.Entry(id).Job.Run()
		assert.Equal(t, 1, calls)
	})
}

func TestRunPayroll(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   string
		message string
	}{
		{"generated", nil, "info", "scheduled payroll generated"},
		{"already generated", payrollerrors.ErrDuplicateMonth, "info", "payroll already generated, nothing to do"},
		{"failure", errors.New("db down"), "error", "scheduled payroll generation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			gen := generatorFunc(func(ctx context.Context, month string) (payroll.GeneratePayrollResponse, error) {
				assert.Equal(t, "2024-06", month)
				return payroll.GeneratePayrollResponse{Month: month}, tt.err
			})

			RunPayroll(context.Background(), gen, "2024-06", zap.New(core))

			entries := logs.All()
			assert.Len(t, entries, 1)
			assert.Equal(t, tt.message, entries[0].Message)
			assert.Equal(t, tt.level, entries[0].Level.String())
		})
	}
}
