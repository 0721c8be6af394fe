package payroll

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-hrms/internal/document"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"

	EmployeeStatusActive = "Active"

	AttendancePresent = "Present"
	AttendanceLate    = "Late"

	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// Options tunes a payroll service. Zero values fall back to defaults; a nil
// Renderer or Store disables payslip output.
type Options struct {
	WorkingDays       int
	StrictTransitions bool
	Source            AmountSource
	Renderer          document.Renderer
	Store             document.FileStore
	Outbox            kafka.OutboxRepository
	Now               func() time.Time
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, month string) (GeneratePayrollResponse, error)
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter PayrollFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id, ownerID string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	SetStatus(ctx context.Context, ids []string, status string) (BulkStatusResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, month string) (PayrollSummaryResponse, error)
	Eligibility(ctx context.Context, month string) (EligibilityResponse, error)
	Payslip(ctx context.Context, id, ownerID string) (PayslipFile, error)
	ArchivePayslip(ctx context.Context, id string) (PayrollResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	opts   Options
	mu     sync.Mutex
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if opts.WorkingDays <= 0 {
		opts.WorkingDays = DefaultWorkingDays
	}
	if opts.Source == nil {
		opts.Source = NewRandomSource()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{db: db, repo: repo, opts: opts, logger: l}
}

func (s *service) currentMonth() string {
	return s.opts.Now().Format(monthLayout)
}

// Generate computes an entry for every eligible employee of month. Any
// existing entry for the month blocks the whole run, and a failure writes
// nothing.
func (s *service) Generate(ctx context.Context, month string) (GeneratePayrollResponse, error) {
	if month == "" {
		return GeneratePayrollResponse{}, apperror.RequiredField("month")
	}
	from, err := parseMonth(month)
	if err != nil {
		return GeneratePayrollResponse{}, err
	}
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("generate payroll requested", zap.String("month", month))

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("generate payroll begin tx failed", zap.Error(err))
		return GeneratePayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.MonthExists(ctx, month)
	if err != nil {
		log.Error("generate payroll month check failed", zap.Error(err))
		return GeneratePayrollResponse{}, err
	}
	if exists {
		log.Warn("generate payroll duplicate month", zap.String("month", month))
		return GeneratePayrollResponse{}, payrollerrors.ErrDuplicateMonth
	}

	employees, err := qtx.ListEmployees(ctx)
	if err != nil {
		log.Error("generate payroll list employees failed", zap.Error(err))
		return GeneratePayrollResponse{}, err
	}

	records, err := qtx.ListAttendanceBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		log.Error("generate payroll list attendance failed", zap.Error(err))
		return GeneratePayrollResponse{}, err
	}
	byEmployee := groupAttendance(records)

	now := s.opts.Now().UTC()
	entries := make([]PayrollEntry, 0, len(employees))
	for _, emp := range employees {
		if !Eligible(emp) {
			log.Debug("generate payroll skipped employee",
				zap.String("employee_id", emp.ID.String()),
				zap.String("status", emp.Status),
				zap.Int64("base_salary", emp.BaseSalary),
			)
			continue
		}

		b := Compute(emp.BaseSalary, byEmployee[emp.ID], s.opts.WorkingDays, s.opts.Source)
		entries = append(entries, newEntry(emp.ID, month, b, now))
	}

	if err := qtx.CreateBatch(ctx, entries); err != nil {
		log.Error("generate payroll persist failed", zap.Error(err))
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("generate payroll commit failed", zap.Error(err))
		return GeneratePayrollResponse{}, err
	}

	log.Info("generate payroll success",
		zap.String("month", month),
		zap.Int("count", len(entries)),
		zap.Int("employees", len(employees)),
	)
	return GeneratePayrollResponse{
		Message: fmt.Sprintf("Payroll generated successfully for %s", month),
		Count:   len(entries),
		Month:   month,
	}, nil
}

func newEntry(employeeID uuid.UUID, month string, b Breakdown, now time.Time) PayrollEntry {
	return PayrollEntry{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Month:           month,
		BasicSalary:     b.BasicSalary,
		HRA:             b.HRA,
		Allowances:      b.Allowances,
		Overtime:        b.Overtime,
		Bonus:           b.Bonus,
		GrossSalary:     b.GrossSalary,
		PF:              b.PF,
		Insurance:       b.Insurance,
		OtherDeduction:  b.OtherDeduction,
		TotalDeductions: b.TotalDeductions,
		IncomeTax:       b.IncomeTax,
		NetSalary:       b.NetSalary,
		Status:          StatusPending,
		AttendanceRatio: b.AttendanceRatio,
		WorkingDays:     b.WorkingDays,
		PresentDays:     b.PresentDays,
		GeneratedDate:   now,
	}
}

func groupAttendance(records []MonthlyAttendance) map[uuid.UUID][]string {
	out := make(map[uuid.UUID][]string)
	for _, rec := range records {
		out[rec.EmployeeID] = append(out[rec.EmployeeID], rec.Status)
	}
	return out
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	from, err := parseMonth(req.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := validateComponents(req.PayrollComponents, req.IncomeTax); err != nil {
		return PayrollResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	exists, err := qtx.EntryExists(ctx, req.EmployeeID, req.Month)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		return PayrollResponse{}, payrollerrors.ErrPayrollExists
	}

	records, err := qtx.ListAttendanceBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return PayrollResponse{}, err
	}
	present := 0
	for _, status := range groupAttendance(records)[employeeID] {
		if status == AttendancePresent || status == AttendanceLate {
			present++
		}
	}

	entry := &PayrollEntry{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Month:           req.Month,
		Status:          StatusPending,
		WorkingDays:     s.opts.WorkingDays,
		PresentDays:     present,
		AttendanceRatio: RatioPercent(present, s.opts.WorkingDays),
		GeneratedDate:   s.opts.Now().UTC(),
		Remarks:         req.Remarks,
	}
	applyComponents(entry, req.PayrollComponents, req.IncomeTax)

	if err := qtx.Create(ctx, entry); err != nil {
		log.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("create payroll commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	entry.Employee = emp
	log.Info("create payroll success",
		zap.String("payroll_id", entry.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
	)
	return mapToResponse(*entry), nil
}

func (s *service) GetAll(ctx context.Context, filter PayrollFilterRequest) ([]PayrollResponse, error) {
	if filter.Month != "" {
		if _, err := parseMonth(filter.Month); err != nil {
			return nil, err
		}
	}
	entries, err := s.repo.FindAll(ctx, PayrollFilter{
		EmployeeID: filter.EmployeeID,
		Month:      filter.Month,
		Status:     filter.Status,
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

// GetByID hides entries of other employees when ownerID is set.
func (s *service) GetByID(ctx context.Context, id, ownerID string) (PayrollResponse, error) {
	entry, err := s.findOwned(ctx, s.repo, id, ownerID)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*entry), nil
}

func (s *service) findOwned(ctx context.Context, repo Repository, id, ownerID string) (*PayrollEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	entry, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}
	if ownerID != "" && entry.EmployeeID.String() != ownerID {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	return entry, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if req.Components != nil {
		if err := validateComponents(*req.Components, req.IncomeTax); err != nil {
			return PayrollResponse{}, err
		}
	} else if req.IncomeTax != nil && *req.IncomeTax < 0 {
		return PayrollResponse{}, payrollerrors.ErrInvalidMoneyValue
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := s.findOwned(ctx, qtx, id, "")
	if err != nil {
		return PayrollResponse{}, err
	}

	if req.Components != nil {
		tax := req.IncomeTax
		if tax == nil {
			tax = &entry.IncomeTax
		}
		applyComponents(entry, *req.Components, tax)
	} else if req.IncomeTax != nil {
		entry.IncomeTax = *req.IncomeTax
		entry.Recalculate()
	}
	if req.Remarks != nil {
		entry.Remarks = *req.Remarks
	}

	becamePaid := false
	if req.Status != nil {
		if !s.isAllowedStatusTransition(entry.Status, *req.Status) {
			return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
		}
		becamePaid = *req.Status == StatusPaid
		s.stampStatus(entry, *req.Status)
	}

	if err := qtx.Update(ctx, entry); err != nil {
		log.Error("update payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if becamePaid {
		if err := s.enqueuePayslips(ctx, tx, []PayrollEntry{*entry}); err != nil {
			log.Error("update payroll enqueue payslip failed", zap.Error(err))
			return PayrollResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("update payroll commit failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	log.Info("update payroll success", zap.String("payroll_id", id), zap.String("status", entry.Status))
	return mapToResponse(*entry), nil
}

// SetStatus applies status to every known id, Paid when status is empty.
// Unknown ids are ignored and the returned count covers matched entries only.
func (s *service) SetStatus(ctx context.Context, ids []string, status string) (BulkStatusResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if status == "" {
		status = StatusPaid
	}
	if !validStatus(status) {
		return BulkStatusResponse{}, payrollerrors.ErrInvalidStatus
	}

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return BulkStatusResponse{Updated: 0, Status: status}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("set payroll status begin tx failed", zap.Error(err))
		return BulkStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entries, err := qtx.FindByIDs(ctx, valid)
	if err != nil {
		return BulkStatusResponse{}, err
	}

	matched := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !s.isAllowedStatusTransition(entry.Status, status) {
			log.Warn("set payroll status invalid transition",
				zap.String("payroll_id", entry.ID.String()),
				zap.String("from_status", entry.Status),
				zap.String("to_status", status),
			)
			return BulkStatusResponse{}, payrollerrors.ErrInvalidStatusTransition
		}
		matched = append(matched, entry.ID.String())
	}

	var paidDate *time.Time
	if status == StatusPaid {
		now := s.opts.Now().UTC()
		paidDate = &now
	}
	if err := qtx.UpdateStatus(ctx, matched, status, paidDate); err != nil {
		log.Error("set payroll status persist failed", zap.Error(err))
		return BulkStatusResponse{}, err
	}
	if status == StatusPaid {
		if err := s.enqueuePayslips(ctx, tx, entries); err != nil {
			log.Error("set payroll status enqueue payslip failed", zap.Error(err))
			return BulkStatusResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("set payroll status commit failed", zap.Error(err))
		return BulkStatusResponse{}, err
	}

	log.Info("set payroll status success",
		zap.String("status", status),
		zap.Int("requested", len(ids)),
		zap.Int("updated", len(matched)),
	)
	return BulkStatusResponse{Updated: len(matched), Status: status}, nil
}

func (s *service) enqueuePayslips(ctx context.Context, tx *sql.Tx, entries []PayrollEntry) error {
	if s.opts.Outbox == nil || len(entries) == 0 {
		return nil
	}
	meta := contextutil.ExtractMetadata(ctx)
	otx := s.opts.Outbox.WithTx(tx)
	for _, entry := range entries {
		event, err := kafka.NewOutboxEvent(
			meta.RequestID,
			"payroll",
			entry.ID.String(),
			events.PayrollPayslipRequestedType,
			events.PayrollPayslipRequestedTopic,
			events.PayrollPayslipRequestedEvent{
				EventType:   events.PayrollPayslipRequestedType,
				PayrollID:   entry.ID.String(),
				EmployeeID:  entry.EmployeeID.String(),
				Month:       entry.Month,
				RequestedBy: meta.UserID,
				OccurredAt:  s.opts.Now().UTC(),
			},
		)
		if err != nil {
			return err
		}
		if err := otx.Create(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrPayrollNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return payrollerrors.ErrPayrollNotFound
	}
	return tx.Commit()
}

func (s *service) Summary(ctx context.Context, month string) (PayrollSummaryResponse, error) {
	if month == "" {
		month = s.currentMonth()
	}
	if _, err := parseMonth(month); err != nil {
		return PayrollSummaryResponse{}, err
	}

	entries, err := s.repo.FindAll(ctx, PayrollFilter{Month: month})
	if err != nil {
		return PayrollSummaryResponse{}, err
	}

	resp := PayrollSummaryResponse{Month: month, Entries: len(entries)}
	for _, entry := range entries {
		switch entry.Status {
		case StatusPaid:
			resp.Paid++
		default:
			resp.Pending++
		}
		resp.TotalGross += entry.GrossSalary
		resp.TotalDeductions += entry.TotalDeductions
		resp.TotalTax += entry.IncomeTax
		resp.TotalNet += entry.NetSalary
	}
	return resp, nil
}

func (s *service) Eligibility(ctx context.Context, month string) (EligibilityResponse, error) {
	if month == "" {
		month = s.currentMonth()
	}
	if _, err := parseMonth(month); err != nil {
		return EligibilityResponse{}, err
	}

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return EligibilityResponse{}, err
	}
	entries, err := s.repo.FindAll(ctx, PayrollFilter{Month: month})
	if err != nil {
		return EligibilityResponse{}, err
	}

	resp := EligibilityResponse{
		Month:           month,
		TotalEmployees:  len(employees),
		ExistingEntries: len(entries),
		Ineligible:      []IneligibleEmployee{},
	}
	for _, emp := range employees {
		if emp.Status == EmployeeStatusActive {
			resp.ActiveEmployees++
		}
		if emp.BaseSalary > 0 {
			resp.WithSalary++
		}
		if Eligible(emp) {
			resp.Eligible++
			continue
		}
		resp.Ineligible = append(resp.Ineligible, IneligibleEmployee{
			EmployeeID: emp.ID.String(),
			Name:       emp.Name,
			Status:     emp.Status,
			BaseSalary: emp.BaseSalary,
		})
	}
	resp.CanGenerate = resp.ExistingEntries == 0 && resp.Eligible > 0
	return resp, nil
}

func (s *service) Payslip(ctx context.Context, id, ownerID string) (PayslipFile, error) {
	if s.opts.Renderer == nil {
		return PayslipFile{}, payrollerrors.ErrPayslipUnavailable
	}
	entry, err := s.findOwned(ctx, s.repo, id, ownerID)
	if err != nil {
		return PayslipFile{}, err
	}
	return s.renderPayslip(*entry)
}

// ArchivePayslip renders the payslip into the file store and records its
// reference on the entry.
func (s *service) ArchivePayslip(ctx context.Context, id string) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if s.opts.Renderer == nil || s.opts.Store == nil {
		return PayrollResponse{}, payrollerrors.ErrPayslipUnavailable
	}

	entry, err := s.findOwned(ctx, s.repo, id, "")
	if err != nil {
		return PayrollResponse{}, err
	}
	file, err := s.renderPayslip(*entry)
	if err != nil {
		return PayrollResponse{}, err
	}
	stored, err := s.opts.Store.Save(ctx, document.TypePayslip, file.Filename, bytes.NewReader(file.Content))
	if err != nil {
		log.Error("archive payslip store failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	now := s.opts.Now().UTC()
	affected, err := s.repo.SetPayslip(ctx, id, stored.Reference, now)
	if err != nil {
		log.Error("archive payslip persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	if affected == 0 {
		log.Warn("archive payslip entry removed meanwhile", zap.String("payroll_id", id))
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	entry.PayslipRef = &stored.Reference
	entry.PayslipGeneratedAt = &now

	log.Info("archive payslip success", zap.String("payroll_id", id), zap.String("reference", stored.Reference))
	return mapToResponse(*entry), nil
}

func (s *service) renderPayslip(entry PayrollEntry) (PayslipFile, error) {
	data := document.PayslipData{
		Month:           entry.Month,
		Status:          entry.Status,
		WorkingDays:     entry.WorkingDays,
		PresentDays:     entry.PresentDays,
		AttendanceRatio: entry.AttendanceRatio,
		Earnings:        earningLines(entry),
		Deductions:      deductionLines(entry),
		GrossSalary:     entry.GrossSalary,
		TotalDeductions: entry.TotalWithholding(),
		NetSalary:       entry.NetSalary,
	}
	code := entry.EmployeeID.String()
	if entry.Employee != nil {
		data.EmployeeName = entry.Employee.Name
		data.EmployeeCode = entry.Employee.EmployeeCode
		data.Department = entry.Employee.Department
		data.JobTitle = entry.Employee.JobTitle
		if entry.Employee.EmployeeCode != "" {
			code = entry.Employee.EmployeeCode
		}
	}
	if entry.PaidDate != nil {
		data.PaidDate = entry.PaidDate.Format(dateLayout)
	}

	content, err := s.opts.Renderer.Payslip(data)
	if err != nil {
		return PayslipFile{}, err
	}
	return PayslipFile{
		Filename: fmt.Sprintf("payslip_%s_%s.pdf", code, entry.Month),
		Content:  content,
	}, nil
}

func earningLines(e PayrollEntry) []document.Line {
	lines := []document.Line{
		{Label: "Basic salary", Amount: e.BasicSalary},
		{Label: "House rent allowance", Amount: e.HRA},
		{Label: "Allowances", Amount: e.Allowances},
	}
	optional := []document.Line{
		{Label: "Transport allowance", Amount: e.TransportAllowance},
		{Label: "Medical allowance", Amount: e.MedicalAllowance},
		{Label: "Food allowance", Amount: e.FoodAllowance},
	}
	for _, l := range optional {
		if l.Amount != 0 {
			lines = append(lines, l)
		}
	}
	return append(lines,
		document.Line{Label: "Overtime", Amount: e.Overtime},
		document.Line{Label: "Bonus", Amount: e.Bonus},
	)
}

func deductionLines(e PayrollEntry) []document.Line {
	lines := []document.Line{
		{Label: "Provident fund", Amount: e.PF},
	}
	optional := []document.Line{
		{Label: "ESI", Amount: e.ESI},
		{Label: "Professional tax", Amount: e.ProfessionalTax},
	}
	for _, l := range optional {
		if l.Amount != 0 {
			lines = append(lines, l)
		}
	}
	lines = append(lines, document.Line{Label: "Insurance", Amount: e.Insurance})
	if e.Loan != 0 {
		lines = append(lines, document.Line{Label: "Loan", Amount: e.Loan})
	}
	return append(lines,
		document.Line{Label: "Other deductions", Amount: e.OtherDeduction},
		document.Line{Label: "Income tax", Amount: e.IncomeTax},
	)
}

func (s *service) isAllowedStatusTransition(current, target string) bool {
	if !s.opts.StrictTransitions {
		return validStatus(target)
	}
	return current == StatusPending && target == StatusPaid
}

func (s *service) stampStatus(entry *PayrollEntry, status string) {
	entry.Status = status
	if status == StatusPaid {
		now := s.opts.Now().UTC()
		entry.PaidDate = &now
		return
	}
	entry.PaidDate = nil
}

func validStatus(status string) bool {
	return status == StatusPending || status == StatusPaid
}

func validateComponents(c PayrollComponents, tax *int64) error {
	values := []int64{
		c.BasicSalary, c.HRA, c.Allowances, c.TransportAllowance, c.MedicalAllowance,
		c.FoodAllowance, c.Overtime, c.Bonus, c.PF, c.ESI, c.ProfessionalTax,
		c.Insurance, c.Loan, c.OtherDeduction,
	}
	if tax != nil {
		values = append(values, *tax)
	}
	for _, v := range values {
		if v < 0 {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	return nil
}

// applyComponents copies c onto entry and restores the totals. A nil tax is
// derived from the new gross.
func applyComponents(entry *PayrollEntry, c PayrollComponents, tax *int64) {
	entry.BasicSalary = c.BasicSalary
	entry.HRA = c.HRA
	entry.Allowances = c.Allowances
	entry.TransportAllowance = c.TransportAllowance
	entry.MedicalAllowance = c.MedicalAllowance
	entry.FoodAllowance = c.FoodAllowance
	entry.Overtime = c.Overtime
	entry.Bonus = c.Bonus
	entry.PF = c.PF
	entry.ESI = c.ESI
	entry.ProfessionalTax = c.ProfessionalTax
	entry.Insurance = c.Insurance
	entry.Loan = c.Loan
	entry.OtherDeduction = c.OtherDeduction

	entry.Recalculate()
	if tax != nil {
		entry.IncomeTax = *tax
	} else {
		entry.IncomeTax = IncomeTax(entry.GrossSalary)
	}
	entry.Recalculate()
}

func parseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidMonthFormat
	}
	return t, nil
}

func mapToResponse(e PayrollEntry) PayrollResponse {
	resp := PayrollResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		Month:      e.Month,
		Earnings: EarningsResponse{
			BasicSalary:        e.BasicSalary,
			HRA:                e.HRA,
			Allowances:         e.Allowances,
			TransportAllowance: e.TransportAllowance,
			MedicalAllowance:   e.MedicalAllowance,
			FoodAllowance:      e.FoodAllowance,
			Overtime:           e.Overtime,
			Bonus:              e.Bonus,
		},
		GrossSalary: e.GrossSalary,
		Deductions: DeductionsResponse{
			PF:              e.PF,
			ESI:             e.ESI,
			ProfessionalTax: e.ProfessionalTax,
			Insurance:       e.Insurance,
			Loan:            e.Loan,
			Other:           e.OtherDeduction,
		},
		IncomeTax:       e.IncomeTax,
		TotalDeductions: e.TotalDeductions,
		NetSalary:       e.NetSalary,
		Status:          e.Status,
		AttendanceRatio: e.AttendanceRatio,
		WorkingDays:     e.WorkingDays,
		PresentDays:     e.PresentDays,
		GeneratedDate:   e.GeneratedDate.Format(dateLayout),
		Remarks:         e.Remarks,
		HasPayslip:      e.PayslipRef != nil && *e.PayslipRef != "",
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.Name
		resp.EmployeeCode = e.Employee.EmployeeCode
		resp.Department = e.Employee.Department
	}
	if e.PaidDate != nil {
		v := e.PaidDate.Format(dateLayout)
		resp.PaidDate = &v
	}
	return resp
}

func mapToListResponse(entries []PayrollEntry) []PayrollResponse {
	resp := make([]PayrollResponse, len(entries))
	for i, entry := range entries {
		resp[i] = mapToResponse(entry)
	}
	return resp
}
