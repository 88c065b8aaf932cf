package auth

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	FirstName       string `json:"first_name" binding:"required,max=150"`
	LastName        string `json:"last_name" binding:"max=150"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	EmployeeNumber  string `json:"employee_number" binding:"required,max=20"`
	JobTitle        string `json:"job_title" binding:"max=150"`
	OrgUnit         string `json:"org_unit" binding:"required,max=150"`
	Location        string `json:"location" binding:"max=150"`
	HireDate        string `json:"hire_date" binding:"required,datetime=2006-01-02"`
	BirthDate       string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangeRoleRequest sets a user's role. IsStaff is left unchanged when
// omitted.
type ChangeRoleRequest struct {
	Role    string `json:"role" binding:"required"`
	IsStaff *bool  `json:"is_staff"`
}

type AuthResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	ProfileID string `json:"profile_id,omitempty"`
}

// TokenPair is what login and refresh hand back to the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func mapToResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Name:     u.FullName(),
		Role:     u.Role,
		IsStaff:  u.IsStaff,
	}
}
