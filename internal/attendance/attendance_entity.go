package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is unique per employee and day; Date is stored at UTC midnight.
type Attendance struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	Date          time.Time `gorm:"column:date;type:date;not null;index;uniqueIndex:idx_attendance_employee_date"`
	Status        string    `gorm:"column:status;type:varchar(20);not null"`
	HoursWorked   float64   `gorm:"column:hours_worked;not null;default:0"`
	CheckIn       *string   `gorm:"column:check_in;type:varchar(8)"`
	CheckOut      *string   `gorm:"column:check_out;type:varchar(8)"`
	Remarks       string    `gorm:"column:remarks;type:text"`
	OvertimeHours float64   `gorm:"column:overtime_hours;not null;default:0"`
	CreatedBy     string    `gorm:"column:created_by;type:varchar(100)"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	Name         string
	Department   string
	DeletedAt    gorm.DeletedAt
}

func (EmployeeRef) TableName() string {
	return "employees"
}
