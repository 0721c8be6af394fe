package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Resources guarded by the enforcer. ResourceSelf covers the /me surface an
// employee uses on their own records; ResourceDirectory is the salary-free
// employee listing.
const (
	ResourceEmployee   = "employee"
	ResourceAttendance = "attendance"
	ResourceLeave      = "leave"
	ResourcePayroll    = "payroll"
	ResourceReport     = "report"
	ResourceSelf       = "self"
	ResourceDirectory  = "directory"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
