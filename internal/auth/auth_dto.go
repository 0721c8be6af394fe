package auth

type LoginRequest struct {
	// Username is the admin username or the employee email.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}
