package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayrollEntry amounts are whole currency units.
type PayrollEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_employee_month"`
	Month      string    `gorm:"type:varchar(7);not null;index;uniqueIndex:idx_payroll_employee_month"`

	// Earnings
	BasicSalary        int64 `gorm:"type:bigint;not null;default:0"`
	HRA                int64 `gorm:"column:hra;type:bigint;not null;default:0"`
	Allowances         int64 `gorm:"type:bigint;not null;default:0"`
	TransportAllowance int64 `gorm:"type:bigint;not null;default:0"`
	MedicalAllowance   int64 `gorm:"type:bigint;not null;default:0"`
	FoodAllowance      int64 `gorm:"type:bigint;not null;default:0"`
	Overtime           int64 `gorm:"type:bigint;not null;default:0"`
	Bonus              int64 `gorm:"type:bigint;not null;default:0"`
	GrossSalary        int64 `gorm:"type:bigint;not null;default:0"`

	// Deductions
	PF              int64 `gorm:"column:pf;type:bigint;not null;default:0"`
	ESI             int64 `gorm:"column:esi;type:bigint;not null;default:0"`
	ProfessionalTax int64 `gorm:"type:bigint;not null;default:0"`
	Insurance       int64 `gorm:"type:bigint;not null;default:0"`
	Loan            int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeduction  int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64 `gorm:"type:bigint;not null;default:0"`
	IncomeTax       int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary       int64 `gorm:"type:bigint;not null;default:0"`

	Status          string `gorm:"type:varchar(20);not null;default:'Pending';index"`
	PaidDate        *time.Time
	AttendanceRatio float64 `gorm:"not null;default:0"`
	WorkingDays     int     `gorm:"not null;default:0"`
	PresentDays     int     `gorm:"not null;default:0"`
	GeneratedDate   time.Time
	Remarks         string `gorm:"type:text"`

	PayslipRef         *string `gorm:"type:varchar(255)"`
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (PayrollEntry) TableName() string {
	return "payroll_entries"
}

// Recalculate restores the entry's totals from its components.
func (p *PayrollEntry) Recalculate() {
	p.GrossSalary = p.BasicSalary + p.HRA + p.Allowances + p.TransportAllowance +
		p.MedicalAllowance + p.FoodAllowance + p.Overtime + p.Bonus
	p.TotalDeductions = p.PF + p.ESI + p.ProfessionalTax + p.Insurance + p.Loan + p.OtherDeduction
	p.NetSalary = p.GrossSalary - p.TotalDeductions - p.IncomeTax
}

// TotalWithholding is every amount held back from gross, income tax included.
func (p PayrollEntry) TotalWithholding() int64 {
	return p.TotalDeductions + p.IncomeTax
}

// PayrollEmployee is the payroll view of an employee row.
type PayrollEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	Name         string
	Email        string
	Department   string
	JobTitle     string
	Status       string
	BaseSalary   int64
	DeletedAt    gorm.DeletedAt
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

// MonthlyAttendance is the payroll view of an attendance row.
type MonthlyAttendance struct {
	EmployeeID uuid.UUID `gorm:"type:uuid"`
	Date       time.Time
	Status     string
}

func (MonthlyAttendance) TableName() string {
	return "attendances"
}
