package attendance

type RecordAttendanceRequest struct {
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	HoursWorked *float64 `json:"hours_worked" binding:"omitempty,gte=0,lte=24"`
	CheckIn     *string  `json:"check_in"`
	CheckOut    *string  `json:"check_out"`
	Remarks     string   `json:"remarks"`
}

type BulkAttendanceItem struct {
	EmployeeID  string   `json:"employee_id"`
	Date        string   `json:"date"`
	Status      *string  `json:"status"`
	HoursWorked *float64 `json:"hours_worked"`
	CheckIn     *string  `json:"check_in"`
	CheckOut    *string  `json:"check_out"`
	Remarks     *string  `json:"remarks"`
}

type BulkAttendanceRequest struct {
	Records []BulkAttendanceItem `json:"attendance_records" binding:"required,min=1"`
}

type UpdateAttendanceRequest struct {
	Status        *string  `json:"status"`
	HoursWorked   *float64 `json:"hours_worked" binding:"omitempty,gte=0,lte=24"`
	CheckIn       *string  `json:"check_in"`
	CheckOut      *string  `json:"check_out"`
	Remarks       *string  `json:"remarks"`
	OvertimeHours *float64 `json:"overtime_hours" binding:"omitempty,gte=0"`
}

type AttendanceFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

type AttendanceResponse struct {
	ID            string  `json:"id,omitempty"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	EmployeeCode  string  `json:"employee_code,omitempty"`
	Department    string  `json:"department,omitempty"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	HoursWorked   float64 `json:"hours_worked"`
	CheckIn       *string `json:"check_in"`
	CheckOut      *string `json:"check_out"`
	Remarks       string  `json:"remarks,omitempty"`
	OvertimeHours float64 `json:"overtime_hours"`
	CreatedBy     string  `json:"created_by,omitempty"`
}

// RecordResult tells whether Record inserted a new row or replaced one.
type RecordResult struct {
	Attendance AttendanceResponse
	Created    bool
}

type BulkAttendanceResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Total   int    `json:"total"`
}

type StatisticsResponse struct {
	Date              string  `json:"date"`
	TotalEmployees    int     `json:"total_employees"`
	PresentCount      int     `json:"present_count"`
	AbsentCount       int     `json:"absent_count"`
	LateCount         int     `json:"late_count"`
	HalfDayCount      int     `json:"half_day_count"`
	AttendanceRate    float64 `json:"attendance_rate"`
	MarkedAttendance  int     `json:"marked_attendance"`
	PendingAttendance int     `json:"pending_attendance"`
}
