package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The report package reads other features' tables through narrow views.

type EmployeeRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Department string
	Status     string
	BaseSalary int64
	DeletedAt  gorm.DeletedAt
}

func (EmployeeRow) TableName() string {
	return "employees"
}

type AttendanceRow struct {
	EmployeeID  uuid.UUID `gorm:"type:uuid"`
	Date        time.Time
	Status      string
	HoursWorked float64
}

func (AttendanceRow) TableName() string {
	return "attendances"
}

type LeaveRow struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status string
}

func (LeaveRow) TableName() string {
	return "leave_requests"
}

type PayrollRow struct {
	EmployeeID      uuid.UUID `gorm:"type:uuid"`
	Month           string
	GrossSalary     int64
	TotalDeductions int64
	IncomeTax       int64
	NetSalary       int64
}

func (PayrollRow) TableName() string {
	return "payroll_entries"
}
