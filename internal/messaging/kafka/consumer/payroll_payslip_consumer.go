package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-hrms/internal/events"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipArchiver is satisfied by payroll.Service.
type PayslipArchiver interface {
	ArchivePayslip(ctx context.Context, id string) (payroll.PayrollResponse, error)
}

func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	archiver PayslipArchiver,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message, log *zap.Logger) bool {
		var event events.PayrollPayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll payslip event failed", zap.Error(err))
			return true
		}

		entry, err := archiver.ArchivePayslip(ctx, event.PayrollID)
		if err != nil {
			if errors.Is(err, payrollerrors.ErrPayrollNotFound) {
				log.Warn("payroll entry gone before payslip was archived, skipping",
					zap.String("payroll_id", event.PayrollID),
				)
				return true
			}
			log.Error("archive payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.String("month", event.Month),
				zap.Error(err),
			)
			return false
		}

		log.Info("payroll payslip archived",
			zap.String("payroll_id", event.PayrollID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("month", entry.Month),
		)
		return true
	})
}
