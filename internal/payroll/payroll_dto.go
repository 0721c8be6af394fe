package payroll

type GeneratePayrollRequest struct {
	Month string `json:"month"`
}

type GeneratePayrollResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Month   string `json:"month"`
}

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required"`
	PayrollComponents
	// IncomeTax is derived from gross when omitted.
	IncomeTax *int64 `json:"income_tax"`
	Remarks   string `json:"remarks"`
}

type UpdatePayrollRequest struct {
	Components *PayrollComponents `json:"components"`
	IncomeTax  *int64             `json:"income_tax"`
	Status     *string            `json:"status" binding:"omitempty,oneof=Pending Paid"`
	Remarks    *string            `json:"remarks"`
}

type PayrollComponents struct {
	BasicSalary        int64 `json:"basic_salary"`
	HRA                int64 `json:"hra"`
	Allowances         int64 `json:"allowances"`
	TransportAllowance int64 `json:"transport_allowance"`
	MedicalAllowance   int64 `json:"medical_allowance"`
	FoodAllowance      int64 `json:"food_allowance"`
	Overtime           int64 `json:"overtime"`
	Bonus              int64 `json:"bonus"`
	PF                 int64 `json:"pf"`
	ESI                int64 `json:"esi"`
	ProfessionalTax    int64 `json:"professional_tax"`
	Insurance          int64 `json:"insurance"`
	Loan               int64 `json:"loan"`
	OtherDeduction     int64 `json:"other_deduction"`
}

type BulkStatusRequest struct {
	PayrollIDs []string `json:"payroll_ids"`
	Status     string   `json:"status" binding:"omitempty,oneof=Pending Paid"`
}

type BulkStatusResponse struct {
	Updated int    `json:"updated"`
	Status  string `json:"status"`
}

type PayrollFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Month      string `form:"month"`
	Status     string `form:"status" binding:"omitempty,oneof=Pending Paid"`
}

type EarningsResponse struct {
	BasicSalary        int64 `json:"basic_salary"`
	HRA                int64 `json:"hra"`
	Allowances         int64 `json:"allowances"`
	TransportAllowance int64 `json:"transport_allowance"`
	MedicalAllowance   int64 `json:"medical_allowance"`
	FoodAllowance      int64 `json:"food_allowance"`
	Overtime           int64 `json:"overtime"`
	Bonus              int64 `json:"bonus"`
}

type DeductionsResponse struct {
	PF              int64 `json:"pf"`
	ESI             int64 `json:"esi"`
	ProfessionalTax int64 `json:"professional_tax"`
	Insurance       int64 `json:"insurance"`
	Loan            int64 `json:"loan"`
	Other           int64 `json:"other"`
}

type PayrollResponse struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    string             `json:"employee_name,omitempty"`
	EmployeeCode    string             `json:"employee_code,omitempty"`
	Department      string             `json:"department,omitempty"`
	Month           string             `json:"month"`
	Earnings        EarningsResponse   `json:"earnings"`
	GrossSalary     int64              `json:"gross_salary"`
	Deductions      DeductionsResponse `json:"deductions"`
	IncomeTax       int64              `json:"income_tax"`
	TotalDeductions int64              `json:"total_deductions"`
	NetSalary       int64              `json:"net_salary"`
	Status          string             `json:"status"`
	PaidDate        *string            `json:"paid_date,omitempty"`
	AttendanceRatio float64            `json:"attendance_ratio"`
	WorkingDays     int                `json:"working_days"`
	PresentDays     int                `json:"present_days"`
	GeneratedDate   string             `json:"generated_date"`
	Remarks         string             `json:"remarks,omitempty"`
	HasPayslip      bool               `json:"has_payslip"`
}

type PayrollSummaryResponse struct {
	Month           string `json:"month"`
	Entries         int    `json:"entries"`
	Paid            int    `json:"paid"`
	Pending         int    `json:"pending"`
	TotalGross      int64  `json:"total_gross"`
	TotalDeductions int64  `json:"total_deductions"`
	TotalTax        int64  `json:"total_tax"`
	TotalNet        int64  `json:"total_net"`
}

type EligibilityResponse struct {
	Month           string               `json:"month"`
	TotalEmployees  int                  `json:"total_employees"`
	ActiveEmployees int                  `json:"active_employees"`
	WithSalary      int                  `json:"with_salary"`
	Eligible        int                  `json:"eligible"`
	ExistingEntries int                  `json:"existing_entries"`
	CanGenerate     bool                 `json:"can_generate"`
	Ineligible      []IneligibleEmployee `json:"ineligible"`
}

type IneligibleEmployee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	BaseSalary int64  `json:"base_salary"`
}

type PayslipFile struct {
	Filename string
	Content  []byte
}
