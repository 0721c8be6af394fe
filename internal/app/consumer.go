package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-hrms/internal/config"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	offerLetterGroupID = "go-hrms-offer-letter"
	payslipGroupID     = "go-hrms-payslip-archive"
)

// RunConsumer serves the employee lifecycle and payslip topics until
// SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if cfg.StoreDriver == config.StoreMemory {
		return fmt.Errorf("consumer needs a store shared with the api, STORE_DRIVER=%s is private to one process", cfg.StoreDriver)
	}

	gormDB, err := connection.OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// no outbox: the consumer never emits events of its own
	m, err := newModules(cfg, infrastructure{gormDB: gormDB, sqlDB: sqlDB}, logger)
	if err != nil {
		return err
	}

	lifecycleReader := newReader(cfg.KafkaBroker, events.EmployeeCreatedTopic, offerLetterGroupID)
	defer lifecycleReader.Close()
	payslipReader := newReader(cfg.KafkaBroker, events.PayrollPayslipRequestedTopic, payslipGroupID)
	defer payslipReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, m.employee, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumePayrollPayslipRequested(ctx, payslipReader, m.payroll, logger)
	}()
	wg.Wait()

	logger.Info("consumer shutting down")
	return nil
}

func newReader(broker, topic, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
