package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

type PayrollFilter struct {
	EmployeeID string
	Month      string
	Status     string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *PayrollEntry) error
	CreateBatch(ctx context.Context, entries []PayrollEntry) error
	FindAll(ctx context.Context, filter PayrollFilter) ([]PayrollEntry, error)
	FindByID(ctx context.Context, id string) (*PayrollEntry, error)
	FindByIDs(ctx context.Context, ids []string) ([]PayrollEntry, error)
	Update(ctx context.Context, entry *PayrollEntry) error
	UpdateStatus(ctx context.Context, ids []string, status string, paidDate *time.Time) error
	SetPayslip(ctx context.Context, id, ref string, generatedAt time.Time) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	MonthExists(ctx context.Context, month string) (bool, error)
	EntryExists(ctx context.Context, employeeID, month string) (bool, error)
	ListEmployees(ctx context.Context) ([]PayrollEmployee, error)
	FindEmployee(ctx context.Context, id string) (*PayrollEmployee, error)
	ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]MonthlyAttendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, entry *PayrollEntry) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(entry).Error
}

func (r *repository) CreateBatch(ctx context.Context, entries []PayrollEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Employee").CreateInBatches(entries, 100).Error
}

func (r *repository) FindAll(ctx context.Context, filter PayrollFilter) ([]PayrollEntry, error) {
	db := r.db.WithContext(ctx).Preload("Employee", unscoped)
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != "" {
		db = db.Where("month = ?", filter.Month)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var entries []PayrollEntry
	err := db.Order("month DESC, created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollEntry, error) {
	var entry PayrollEntry
	err := r.db.WithContext(ctx).
		Preload("Employee", unscoped).
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]PayrollEntry, error) {
	var entries []PayrollEntry
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&entries).Error
	return entries, err
}

func (r *repository) Update(ctx context.Context, entry *PayrollEntry) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(entry).Error
}

func (r *repository) UpdateStatus(ctx context.Context, ids []string, status string, paidDate *time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":     status,
			"paid_date":  paidDate,
			"updated_at": time.Now().UTC(),
		}).Error
}

// SetPayslip touches only the payslip columns so concurrent edits to the
// entry survive.
func (r *repository) SetPayslip(ctx context.Context, id, ref string, generatedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payslip_ref":          ref,
			"payslip_generated_at": generatedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&PayrollEntry{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) MonthExists(ctx context.Context, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Where("month = ?", month).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EntryExists(ctx context.Context, employeeID, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollEntry{}).
		Where("employee_id = ? AND month = ?", employeeID, month).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListEmployees(ctx context.Context) ([]PayrollEmployee, error) {
	var employees []PayrollEmployee
	err := r.db.WithContext(ctx).
		Order("employee_code ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindEmployee(ctx context.Context, id string) (*PayrollEmployee, error) {
	var emp PayrollEmployee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	return &emp, err
}

// ListAttendanceBetween returns records with from <= date < to.
func (r *repository) ListAttendanceBetween(ctx context.Context, from, to time.Time) ([]MonthlyAttendance, error) {
	var rows []MonthlyAttendance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Find(&rows).Error
	return rows, err
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
