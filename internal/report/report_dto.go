package report

type DashboardResponse struct {
	TotalEmployees  int     `json:"total_employees"`
	ActiveEmployees int     `json:"active_employees"`
	Departments     int     `json:"departments"`
	AverageSalary   float64 `json:"avg_salary"`
	PresentToday    int     `json:"present_today"`
	PendingLeaves   int     `json:"pending_leaves"`
}

type AttendanceSummaryFilter struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type AttendanceSummary struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	TotalHours     float64 `json:"total_hours"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type DepartmentSalary struct {
	Department    string  `json:"department"`
	EmployeeCount int     `json:"employee_count"`
	TotalSalary   int64   `json:"total_salary"`
	AverageSalary float64 `json:"avg_salary"`
	MinSalary     int64   `json:"min_salary"`
	MaxSalary     int64   `json:"max_salary"`
}

type MonthlyPayroll struct {
	Month           string `json:"month"`
	TotalEmployees  int    `json:"total_employees"`
	TotalGross      int64  `json:"total_gross"`
	TotalDeductions int64  `json:"total_deductions"`
	TotalNet        int64  `json:"total_net"`
}
