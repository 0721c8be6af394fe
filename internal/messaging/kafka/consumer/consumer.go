package consumer

import (
	"context"
	"encoding/json"
	"errors"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// handleFunc reports whether the message is done with. Returning false
// leaves the offset uncommitted so the message is redelivered after a
// rebalance or restart.
type handleFunc func(ctx context.Context, msg kafkago.Message, log *zap.Logger) bool

func run(ctx context.Context, reader MessageReader, log *zap.Logger, handle handleFunc) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgCtx := ctx
		if rid := header(msg, "request_id"); rid != "" {
			msgCtx = contextutil.WithRequestID(ctx, rid)
		}
		msgLog := log.With(zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset))

		if !handle(msgCtx, msg, msgLog) {
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("commit message failed", zap.Error(err))
		}
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// OfferLetterIssuer is satisfied by employee.Service.
type OfferLetterIssuer interface {
	IssueOfferLetter(ctx context.Context, id string) (string, error)
}

// ConsumeEmployeeLifecycle issues the offer letter of every newly created
// employee. Issuing is idempotent so redelivery is harmless.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	issuer OfferLetterIssuer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message, log *zap.Logger) bool {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			return true
		}
		if event.EventType != events.EmployeeCreatedType {
			log.Debug("ignoring employee lifecycle event", zap.String("event_type", event.EventType))
			return true
		}

		ref, err := issuer.IssueOfferLetter(ctx, event.EmployeeID)
		if err != nil {
			if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				log.Warn("employee gone before offer letter was issued, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				return true
			}
			log.Error("issue offer letter failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			return false
		}

		log.Info("offer letter issued from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("employee_code", event.EmployeeCode),
			zap.String("reference", ref),
		)
		return true
	})
}
