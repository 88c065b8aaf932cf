package profile

import (
	"go-vacation/internal/shared/dateutil"
)

type UpdateProfileRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=150"`
	LastName       string `json:"last_name" binding:"max=150"`
	Email          string `json:"email" binding:"required,email"`
	BirthDate      string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	EmployeeNumber string `json:"employee_number" binding:"required,max=20"`
	JobTitle       string `json:"job_title" binding:"required,max=100"`
	OrgUnit        string `json:"org_unit" binding:"required,max=100"`
	Location       string `json:"location" binding:"required,max=100"`
}

// AssignManagerRequest clears the manager when ManagerID is null.
type AssignManagerRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type ProfileResponse struct {
	ID                 string `json:"id"`
	UserID             string `json:"user_id"`
	Username           string `json:"username"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	EmployeeNumber     string `json:"employee_number"`
	JobTitle           string `json:"job_title"`
	OrgUnit            string `json:"org_unit"`
	Location           string `json:"location"`
	HireDate           string `json:"hire_date"`
	BirthDate          string `json:"birth_date,omitempty"`
	ManagerID          string `json:"manager_id,omitempty"`
	ManagerName        string `json:"manager_name,omitempty"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

func mapToResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		Username:           p.Owner.Username,
		FullName:           p.DisplayName(),
		Email:              p.Owner.Email,
		EmployeeNumber:     p.EmployeeNumber,
		JobTitle:           p.JobTitle,
		OrgUnit:            p.OrgUnit,
		Location:           p.Location,
		HireDate:           dateutil.Format(p.HireDate),
		OnboardingComplete: p.OnboardingComplete,
	}
	if p.BirthDate != nil {
		resp.BirthDate = dateutil.Format(*p.BirthDate)
	}
	if p.ManagerID != nil {
		resp.ManagerID = p.ManagerID.String()
	}
	if p.Manager != nil {
		resp.ManagerName = p.Manager.DisplayName()
	}
	return resp
}
