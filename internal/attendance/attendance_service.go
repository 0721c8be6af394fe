package attendance

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent      = "Present"
	StatusAbsent       = "Absent"
	StatusLate         = "Late"
	StatusHalfDay      = "Half Day"
	StatusWorkFromHome = "Work From Home"
	// StatusNoRecord fills gaps in views and is never stored.
	StatusNoRecord = "No Record"

	bulkDefaultHours   = 8
	bulkDefaultRemarks = "Bulk attendance entry"

	dateLayout = "2006-01-02"
)

type Options struct {
	Now func() time.Time
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, actorID string, req RecordAttendanceRequest) (RecordResult, error)
	BulkRecord(ctx context.Context, actorID string, items []BulkAttendanceItem) (BulkAttendanceResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AttendanceFilterRequest) ([]AttendanceResponse, error)
	Weekly(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	Statistics(ctx context.Context, date string) (StatisticsResponse, error)
	Report(ctx context.Context, filter AttendanceFilterRequest) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	opts   Options
	mu     sync.Mutex
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{db: db, repo: repo, opts: opts, logger: l}
}

func (s *service) today() time.Time {
	return truncateDay(s.opts.Now())
}

// Record creates the day's row or replaces every field of the existing one.
func (s *service) Record(ctx context.Context, actorID string, req RecordAttendanceRequest) (RecordResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	switch {
	case req.EmployeeID == "":
		return RecordResult{}, apperror.RequiredField("employee_id")
	case req.Date == "":
		return RecordResult{}, apperror.RequiredField("date")
	case req.Status == "":
		return RecordResult{}, apperror.RequiredField("status")
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RecordResult{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return RecordResult{}, err
	}
	if !StorableStatus(req.Status) {
		return RecordResult{}, attendanceerrors.ErrInvalidStatus
	}
	hours := 0.0
	if req.HoursWorked != nil {
		hours = *req.HoursWorked
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("record attendance begin tx failed", zap.Error(err))
		return RecordResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return RecordResult{}, err
	}
	if !exists {
		return RecordResult{}, attendanceerrors.ErrEmployeeNotFound
	}

	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created = true
		row = &Attendance{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       date,
		}
	case err != nil:
		log.Error("record attendance lookup failed", zap.Error(err))
		return RecordResult{}, err
	}

	row.Status = req.Status
	row.HoursWorked = hours
	row.CheckIn = req.CheckIn
	row.CheckOut = req.CheckOut
	row.Remarks = req.Remarks
	row.CreatedBy = actorID

	if created {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		log.Error("record attendance persist failed", zap.Error(err))
		return RecordResult{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("record attendance commit failed", zap.Error(err))
		return RecordResult{}, err
	}

	log.Info("record attendance success",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.Bool("created", created),
	)
	return RecordResult{Attendance: mapToResponse(*row), Created: created}, nil
}

// BulkRecord upserts every item in one transaction. Items without an
// employee or date, or naming an unknown employee, are skipped; a malformed
// item fails the whole batch.
func (s *service) BulkRecord(ctx context.Context, actorID string, items []BulkAttendanceItem) (BulkAttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if len(items) == 0 {
		return BulkAttendanceResponse{}, attendanceerrors.ErrEmptyBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("bulk attendance begin tx failed", zap.Error(err))
		return BulkAttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var resp BulkAttendanceResponse
	for i, item := range items {
		if item.EmployeeID == "" || item.Date == "" {
			resp.Skipped++
			continue
		}
		employeeID, err := uuid.Parse(item.EmployeeID)
		if err != nil {
			return BulkAttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID.WithDetails(itemDetail(i))
		}
		date, err := parseDate(item.Date)
		if err != nil {
			return BulkAttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat.WithDetails(itemDetail(i))
		}
		if item.Status != nil && !StorableStatus(*item.Status) {
			return BulkAttendanceResponse{}, attendanceerrors.ErrInvalidStatus.WithDetails(itemDetail(i))
		}

		exists, err := qtx.EmployeeExists(ctx, item.EmployeeID)
		if err != nil {
			return BulkAttendanceResponse{}, err
		}
		if !exists {
			resp.Skipped++
			continue
		}

		row, err := qtx.FindByEmployeeAndDate(ctx, item.EmployeeID, date)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &Attendance{
				ID:          uuid.New(),
				EmployeeID:  employeeID,
				Date:        date,
				Status:      StatusPresent,
				HoursWorked: bulkDefaultHours,
				Remarks:     bulkDefaultRemarks,
			}
			mergeBulkItem(row, item, actorID)
			if err := qtx.Create(ctx, row); err != nil {
				log.Error("bulk attendance create failed", zap.Int("index", i), zap.Error(err))
				return BulkAttendanceResponse{}, err
			}
			resp.Created++
		case err != nil:
			return BulkAttendanceResponse{}, err
		default:
			mergeBulkItem(row, item, actorID)
			if err := qtx.Update(ctx, row); err != nil {
				log.Error("bulk attendance update failed", zap.Int("index", i), zap.Error(err))
				return BulkAttendanceResponse{}, err
			}
			resp.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("bulk attendance commit failed", zap.Error(err))
		return BulkAttendanceResponse{}, err
	}

	resp.Total = resp.Created + resp.Updated
	resp.Message = "Bulk attendance processed successfully"
	log.Info("bulk attendance success",
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func mergeBulkItem(row *Attendance, item BulkAttendanceItem, actorID string) {
	if item.Status != nil {
		row.Status = *item.Status
	}
	if item.HoursWorked != nil {
		row.HoursWorked = *item.HoursWorked
	}
	if item.CheckIn != nil {
		row.CheckIn = item.CheckIn
	}
	if item.CheckOut != nil {
		row.CheckOut = item.CheckOut
	}
	if item.Remarks != nil {
		row.Remarks = *item.Remarks
	}
	row.CreatedBy = actorID
}

func itemDetail(i int) map[string]int {
	return map[string]int{"index": i}
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}
	if req.Status != nil && !StorableStatus(*req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	if req.Status != nil {
		row.Status = *req.Status
	}
	if req.HoursWorked != nil {
		row.HoursWorked = *req.HoursWorked
	}
	if req.CheckIn != nil {
		row.CheckIn = req.CheckIn
	}
	if req.CheckOut != nil {
		row.CheckOut = req.CheckOut
	}
	if req.Remarks != nil {
		row.Remarks = *req.Remarks
	}
	if req.OvertimeHours != nil {
		row.OvertimeHours = *req.OvertimeHours
	}
	row.CreatedBy = actorID

	if err := qtx.Update(ctx, row); err != nil {
		log.Error("update attendance persist failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("update attendance success", zap.String("attendance_id", id))
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return attendanceerrors.ErrAttendanceNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, filter AttendanceFilterRequest) ([]AttendanceResponse, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Weekly returns the last seven days ending today, oldest first, with
// missing days reported as No Record.
func (s *service) Weekly(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	end := s.today()
	start := end.AddDate(0, 0, -6)
	rows, err := s.repo.FindAll(ctx, AttendanceFilter{EmployeeID: employeeID, From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]Attendance, len(rows))
	for _, row := range rows {
		byDate[row.Date.Format(dateLayout)] = row
	}

	week := make([]AttendanceResponse, 0, 7)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		if row, ok := byDate[key]; ok {
			week = append(week, mapToResponse(row))
			continue
		}
		week = append(week, AttendanceResponse{
			EmployeeID: employeeID,
			Date:       key,
			Status:     StatusNoRecord,
		})
	}
	return week, nil
}

func (s *service) Statistics(ctx context.Context, date string) (StatisticsResponse, error) {
	day := s.today()
	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return StatisticsResponse{}, err
		}
		day = parsed
	}

	rows, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		return StatisticsResponse{}, err
	}
	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return StatisticsResponse{}, err
	}

	resp := StatisticsResponse{
		Date:             day.Format(dateLayout),
		TotalEmployees:   int(total),
		MarkedAttendance: len(rows),
	}
	for _, row := range rows {
		switch row.Status {
		case StatusPresent, StatusWorkFromHome:
			resp.PresentCount++
		case StatusAbsent:
			resp.AbsentCount++
		case StatusLate:
			resp.LateCount++
		case StatusHalfDay:
			resp.HalfDayCount++
		}
	}
	resp.AttendanceRate = Rate(resp.PresentCount, resp.TotalEmployees, 2)
	resp.PendingAttendance = max(0, resp.TotalEmployees-resp.MarkedAttendance)
	return resp, nil
}

// Report lists records of known employees with their identity fields.
func (s *service) Report(ctx context.Context, filter AttendanceFilterRequest) ([]AttendanceResponse, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		if row.Employee == nil {
			continue
		}
		resp = append(resp, mapToResponse(row))
	}
	return resp, nil
}

// Rate is part/total as a percentage rounded to places; zero when total is zero.
func Rate(part, total int, places int32) float64 {
	if total <= 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(places).
		Float64()
	return v
}

// StorableStatus reports whether status may be persisted.
func StorableStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusWorkFromHome:
		return true
	default:
		return false
	}
}

func toFilter(req AttendanceFilterRequest) (AttendanceFilter, error) {
	f := AttendanceFilter{EmployeeID: req.EmployeeID}
	if req.StartDate != "" {
		from, err := parseDate(req.StartDate)
		if err != nil {
			return AttendanceFilter{}, err
		}
		f.From = &from
	}
	if req.EndDate != "" {
		to, err := parseDate(req.EndDate)
		if err != nil {
			return AttendanceFilter{}, err
		}
		f.To = &to
	}
	return f, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		Date:          a.Date.Format(dateLayout),
		Status:        a.Status,
		HoursWorked:   a.HoursWorked,
		CheckIn:       a.CheckIn,
		CheckOut:      a.CheckOut,
		Remarks:       a.Remarks,
		OvertimeHours: a.OvertimeHours,
		CreatedBy:     a.CreatedBy,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name
		resp.EmployeeCode = a.Employee.EmployeeCode
		resp.Department = a.Employee.Department
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}

