package leave

type CreateLeaveRequest struct {
	// EmployeeID is ignored on self-service routes.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Type       string `json:"type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Approved Rejected"`
}

type LeaveFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	Type       string `form:"type"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Type         string `json:"type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	Status       string `json:"status"`
	AppliedDate  string `json:"applied_date"`
	TotalDays    int    `json:"total_days"`
	PaidDays     int    `json:"paid_days"`
	UnpaidDays   int    `json:"unpaid_days"`
}

type BalanceResponse struct {
	EmployeeID string         `json:"employee_id"`
	Year       int            `json:"year"`
	Limits     map[string]int `json:"leave_limits"`
	Used       map[string]int `json:"used_leaves"`
	Remaining  map[string]int `json:"remaining_leaves"`
}
