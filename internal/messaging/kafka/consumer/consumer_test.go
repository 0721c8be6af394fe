package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader replays its queue and then cancels the consumer.
type fakeReader struct {
	queue     []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func message(t *testing.T, offset int64, v any, headers ...kafkago.Header) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(v)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body, Headers: headers}
}

type issuerFunc func(ctx context.Context, id string) (string, error)

func (f issuerFunc) IssueOfferLetter(ctx context.Context, id string) (string, error) {
	return f(ctx, id)
}

type archiverFunc func(ctx context.Context, id string) (payroll.PayrollResponse, error)

func (f archiverFunc) ArchivePayslip(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f(ctx, id)
}

func created(id string) events.EmployeeCreatedEvent {
	return events.EmployeeCreatedEvent{
		EventType:    events.EmployeeCreatedType,
		EmployeeID:   id,
		EmployeeCode: "EMP001",
		OccurredAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		message(t, 1, created("emp-1"), kafkago.Header{Key: "request_id", Value: []byte("req-1")}),
		{Offset: 2, Value: []byte("not json")},
		message(t, 3, events.EmployeeCreatedEvent{EventType: "employee.updated", EmployeeID: "emp-3"}),
		message(t, 4, created("emp-gone")),
		message(t, 5, created("emp-flaky")),
	}}

	var issued []string
	var requestIDs []string
	issuer := issuerFunc(func(ctx context.Context, id string) (string, error) {
		requestIDs = append(requestIDs, contextutil.GetRequestID(ctx))
		switch id {
		case "emp-gone":
			return "", employeeerrors.ErrEmployeeNotFound
		case "emp-flaky":
			return "", errors.New("disk full")
		}
		issued = append(issued, id)
		return "offer_letters/offer_letter_EMP001.pdf", nil
	})

	ConsumeEmployeeLifecycle(ctx, reader, issuer, zap.NewNop())

	assert.Equal(t, []string{"emp-1"}, issued)
	assert.Equal(t, "req-1", requestIDs[0])
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}

func TestConsumePayrollPayslipRequested(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	request := func(id string) events.PayrollPayslipRequestedEvent {
		return events.PayrollPayslipRequestedEvent{
			EventType: events.PayrollPayslipRequestedType,
			PayrollID: id,
			Month:     "2024-01",
		}
	}
	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		message(t, 10, request("pay-1")),
		message(t, 11, request("pay-missing")),
		message(t, 12, request("pay-retry")),
	}}

	var archived []string
	archiver := archiverFunc(func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
		switch id {
		case "pay-missing":
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		case "pay-retry":
			return payroll.PayrollResponse{}, payrollerrors.ErrPayslipUnavailable
		}
		archived = append(archived, id)
		return payroll.PayrollResponse{ID: id, Month: "2024-01"}, nil
	})

	ConsumePayrollPayslipRequested(ctx, reader, archiver, zap.NewNop())

	assert.Equal(t, []string{"pay-1"}, archived)
	assert.Equal(t, []int64{10, 11}, reader.committed)
}
