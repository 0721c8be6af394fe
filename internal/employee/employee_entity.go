package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryStructure holds fixed monthly amounts.
type SalaryStructure struct {
	Basic      int64 `gorm:"type:bigint;not null;default:0" json:"basic"`
	HRA        int64 `gorm:"column:hra;type:bigint;not null;default:0" json:"hra"`
	Allowances int64 `gorm:"type:bigint;not null;default:0" json:"allowances"`
	Deductions int64 `gorm:"type:bigint;not null;default:0" json:"deductions"`
}

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	JobTitle     string    `gorm:"type:varchar(100)"`
	Department   string    `gorm:"type:varchar(100);index"`
	BaseSalary   int64     `gorm:"type:bigint;not null;default:0"`
	HireDate     time.Time `gorm:"type:date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Active'"`
	Phone        string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	ProfilePhoto *string   `gorm:"type:varchar(255)"`

	Salary SalaryStructure `gorm:"embedded;embeddedPrefix:salary_"`

	ResumeRef      *string  `gorm:"type:varchar(255)"`
	Certificates   []string `gorm:"serializer:json"`
	OfferLetterRef *string  `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// PayrollRecord is the salary-history view of a payroll entry.
type PayrollRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID `gorm:"type:uuid"`
	Month           string
	GrossSalary     int64
	TotalDeductions int64
	IncomeTax       int64
	NetSalary       int64
	Status          string
	PaidDate        *time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_entries"
}
