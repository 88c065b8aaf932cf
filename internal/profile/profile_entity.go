package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Owner is the read side of the user account a profile belongs to.
type Owner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      string
	IsStaff   bool
}

func (Owner) TableName() string {
	return "users"
}

// FullName falls back to the username when no name was given.
func (o Owner) FullName() string {
	name := strings.TrimSpace(o.FirstName + " " + o.LastName)
	if name == "" {
		return o.Username
	}
	return name
}

type Profile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_profile_user"`
	ManagerID          *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber     string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_profile_employee_number"`
	JobTitle           string     `gorm:"type:varchar(100)"`
	OrgUnit            string     `gorm:"type:varchar(100);index"`
	Location           string     `gorm:"type:varchar(100)"`
	HireDate           time.Time  `gorm:"type:date;not null"`
	BirthDate          *time.Time `gorm:"type:date"`
	OnboardingComplete bool       `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Owner   Owner    `gorm:"foreignKey:UserID"`
	Manager *Profile `gorm:"foreignKey:ManagerID"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) DisplayName() string {
	return p.Owner.FullName()
}

// ReportsTo is true when managerID is the direct manager of p.
func (p Profile) ReportsTo(managerID uuid.UUID) bool {
	return p.ManagerID != nil && *p.ManagerID == managerID
}
