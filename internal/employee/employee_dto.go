package employee

type SalaryStructureRequest struct {
	Basic      int64 `json:"basic" binding:"gte=0"`
	HRA        int64 `json:"hra" binding:"gte=0"`
	Allowances int64 `json:"allowances" binding:"gte=0"`
	Deductions int64 `json:"deductions" binding:"gte=0"`
}

type CreateEmployeeRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Email           string                  `json:"email" binding:"required,email"`
	JobTitle        string                  `json:"job_title" binding:"required"`
	Department      string                  `json:"department"`
	BaseSalary      *int64                  `json:"salary" binding:"omitempty,gte=0"`
	HireDate        string                  `json:"hire_date"`
	Phone           string                  `json:"phone"`
	Address         string                  `json:"address"`
	SalaryStructure *SalaryStructureRequest `json:"salary_structure"`
}

type UpdateEmployeeRequest struct {
	Name            *string                 `json:"name"`
	Email           *string                 `json:"email" binding:"omitempty,email"`
	JobTitle        *string                 `json:"job_title"`
	Department      *string                 `json:"department"`
	BaseSalary      *int64                  `json:"salary" binding:"omitempty,gte=0"`
	Phone           *string                 `json:"phone"`
	Address         *string                 `json:"address"`
	Status          *string                 `json:"status" binding:"omitempty,oneof=Active 'On Leave' Terminated"`
	SalaryStructure *SalaryStructureRequest `json:"salary_structure"`
}

// UpdateProfileRequest carries the only fields employees may change on
// their own record.
type UpdateProfileRequest struct {
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	ProfilePhoto *string `json:"profile_photo"`
}

type DocumentsResponse struct {
	Resume       *string  `json:"resume"`
	Certificates []string `json:"certificates"`
	OfferLetter  *string  `json:"offer_letter"`
}

type EmployeeResponse struct {
	ID              string            `json:"id"`
	EmployeeCode    string            `json:"employee_code"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	JobTitle        string            `json:"job_title"`
	Department      string            `json:"department"`
	BaseSalary      int64             `json:"salary"`
	HireDate        string            `json:"hire_date"`
	Status          string            `json:"status"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	ProfilePhoto    *string           `json:"profile_photo"`
	SalaryStructure SalaryStructure   `json:"salary_structure"`
	Documents       DocumentsResponse `json:"documents"`
}

// DirectoryEntry is the employee listing shown to non-admins; it carries no
// compensation fields.
type DirectoryEntry struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	JobTitle     string  `json:"job_title"`
	Department   string  `json:"department"`
	HireDate     string  `json:"hire_date"`
	Status       string  `json:"status"`
	Phone        string  `json:"phone"`
	ProfilePhoto *string `json:"profile_photo"`
}

type EmployeeDocumentsResponse struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	Documents    DocumentsResponse `json:"documents"`
}

type PayrollRecordResponse struct {
	ID              string `json:"id"`
	Month           string `json:"month"`
	GrossSalary     int64  `json:"gross_salary"`
	TotalDeductions int64  `json:"total_deductions"`
	IncomeTax       int64  `json:"income_tax"`
	NetSalary       int64  `json:"net_salary"`
	Status          string `json:"status"`
	PaidDate        string `json:"paid_date,omitempty"`
}

type SalaryDetailsResponse struct {
	EmployeeID      string                  `json:"employee_id"`
	EmployeeName    string                  `json:"employee_name"`
	BaseSalary      int64                   `json:"base_salary"`
	SalaryStructure SalaryStructure         `json:"salary_structure"`
	RecentPayroll   []PayrollRecordResponse `json:"recent_payroll"`
}

type UploadDocumentResponse struct {
	Reference    string `json:"reference"`
	Filename     string `json:"filename"`
	ContentType  string `json:"content_type"`
	DocumentType string `json:"document_type"`
	Message      string `json:"message"`
}
