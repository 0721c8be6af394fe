package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest keeps the paid/unpaid split computed when it was submitted;
// later approvals never recompute it.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	Type      string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`

	Status      string `gorm:"type:varchar(20);not null;default:'Pending';index"`
	AppliedDate time.Time
	TotalDays   int `gorm:"not null;default:1"`
	PaidDays    int `gorm:"not null;default:0"`
	UnpaidDays  int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveEmployee is the leave view of an employee row.
type LeaveEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	Name         string
	Department   string
	DeletedAt    gorm.DeletedAt
}

func (LeaveEmployee) TableName() string {
	return "employees"
}
