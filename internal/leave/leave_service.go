package leave

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	dateLayout = "2006-01-02"
)

type Options struct {
	// StrictTransitions only allows Pending to Approved or Rejected.
	StrictTransitions bool
	Now               func() time.Time
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter LeaveFilterRequest) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id, ownerID string) (LeaveResponse, error)
	SetStatus(ctx context.Context, id, status string) (LeaveResponse, error)
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	opts   Options
	mu     sync.Mutex
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{db: db, repo: repo, opts: opts, logger: l}
}

// Submit prices the request against the current-year balance. The balance
// read and the insert happen under the writer lock in one transaction.
func (s *service) Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("employee_id", employeeID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !KnownType(req.Type) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if endDate.Before(startDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		log.Error("submit leave employee check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	history, err := qtx.FindByEmployee(ctx, employeeID)
	if err != nil {
		log.Error("submit leave history lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	now := s.opts.Now().UTC()
	balance := ComputeBalance(history, now.Year())
	total := DaysInclusive(startDate, endDate)
	paid, unpaid := Split(total, balance.Remaining[req.Type])

	l := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		Type:        req.Type,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Status:      StatusPending,
		AppliedDate: now,
		TotalDays:   total,
		PaidDays:    paid,
		UnpaidDays:  unpaid,
	}

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", total),
		zap.Int("paid_days", paid),
		zap.Int("unpaid_days", unpaid),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter LeaveFilterRequest) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, LeaveFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
		Type:       filter.Type,
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// GetByID hides requests of other employees when ownerID is set.
func (s *service) GetByID(ctx context.Context, id, ownerID string) (LeaveResponse, error) {
	l, err := s.find(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if ownerID != "" && l.EmployeeID.String() != ownerID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

// SetStatus overwrites the status. The paid/unpaid split is left untouched.
func (s *service) SetStatus(ctx context.Context, id, status string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !validStatus(status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !s.isAllowedStatusTransition(l.Status, status) {
		log.Warn("set leave status invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if err := qtx.UpdateStatus(ctx, id, status); err != nil {
		log.Error("set leave status persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("set leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("set leave status success",
		zap.String("leave_id", id),
		zap.String("from_status", l.Status),
		zap.String("to_status", status),
	)
	l.Status = status
	return mapToResponse(*l), nil
}

func (s *service) Balance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !exists {
		return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	history, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	b := ComputeBalance(history, s.opts.Now().UTC().Year())
	return BalanceResponse{
		EmployeeID: employeeID,
		Year:       b.Year,
		Limits:     b.Limits,
		Used:       b.Used,
		Remaining:  b.Remaining,
	}, nil
}

func (s *service) isAllowedStatusTransition(current, target string) bool {
	if !s.opts.StrictTransitions {
		return true
	}
	return current == StatusPending && (target == StatusApproved || target == StatusRejected)
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		Type:        l.Type,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		Reason:      l.Reason,
		Status:      l.Status,
		AppliedDate: l.AppliedDate.Format(dateLayout),
		TotalDays:   l.TotalDays,
		PaidDays:    l.PaidDays,
		UnpaidDays:  l.UnpaidDays,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
		resp.EmployeeCode = l.Employee.EmployeeCode
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
