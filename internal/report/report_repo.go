package report

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	ListEmployees(ctx context.Context) ([]EmployeeRow, error)
	ListAttendance(ctx context.Context, from, to *time.Time) ([]AttendanceRow, error)
	CountAttendance(ctx context.Context, date time.Time, status string) (int64, error)
	CountLeaves(ctx context.Context, status string) (int64, error)
	ListPayroll(ctx context.Context) ([]PayrollRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListEmployees(ctx context.Context) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListAttendance(ctx context.Context, from, to *time.Time) ([]AttendanceRow, error) {
	db := r.db.WithContext(ctx)
	if from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to != nil {
		db = db.Where("date <= ?", *to)
	}
	var rows []AttendanceRow
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) CountAttendance(ctx context.Context, date time.Time, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AttendanceRow{}).
		Where("date = ? AND status = ?", date, status).
		Count(&count).Error
	return count, err
}

func (r *repository) CountLeaves(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRow{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) ListPayroll(ctx context.Context) ([]PayrollRow, error) {
	var rows []PayrollRow
	err := r.db.WithContext(ctx).Order("month ASC").Find(&rows).Error
	return rows, err
}
