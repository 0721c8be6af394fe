package events

import "time"

const (
	PayrollPayslipRequestedTopic = "hr.payroll.payslip.requested.v1"
	PayrollPayslipRequestedType  = "payroll.payslip.requested"
)

// PayrollPayslipRequestedEvent asks the consumer to render and archive the
// payslip of a paid entry.
type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	PayrollID   string    `json:"payroll_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
