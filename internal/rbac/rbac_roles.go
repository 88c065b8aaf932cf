package rbac

import "strings"

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

// Resources and actions checked by route guards.
const (
	ResourceLeave    = "leave"
	ResourceProfile  = "profile"
	ResourceCalendar = "calendar"
	ResourceRBAC     = "rbac"
	ResourceUser     = "user"

	ActionRead           = "read"
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionApproveManager = "approve_manager"
	ActionApproveFinal   = "approve_final"
	ActionReject         = "reject"
	ActionExport         = "export"
	ActionAssignManager  = "assign_manager"
	ActionAssignRole     = "assign_role"
)

// Each role inherits everything granted to the role below it.
var hierarchy = []string{RoleEmployee, RoleManager, RoleHR, RoleAdmin}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

var grants = map[string][]Permission{
	RoleEmployee: {
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionCreate},
		{ResourceProfile, ActionRead},
		{ResourceProfile, ActionUpdate},
		{ResourceCalendar, ActionRead},
		// Any employee can be named manager on a profile; the leave service
		// checks the reporting line before a first-level decision.
		{ResourceLeave, ActionApproveManager},
		{ResourceLeave, ActionReject},
	},
	RoleManager: {},
	RoleHR: {
		{ResourceLeave, ActionApproveFinal},
		{ResourceLeave, ActionExport},
		{ResourceProfile, ActionAssignManager},
	},
	RoleAdmin: {
		{ResourceRBAC, ActionRead},
		{ResourceUser, ActionAssignRole},
	},
}

// NormalizeRole upper-cases role and falls back to EMPLOYEE for unknown
// values.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if rank(role) < 0 {
		return RoleEmployee
	}
	return role
}

// AtLeast reports whether role sits at or above min in the hierarchy.
func AtLeast(role, min string) bool {
	r := rank(strings.ToUpper(role))
	return r >= 0 && r >= rank(min)
}

// ValidRole reports whether role is one of the known roles, ignoring case.
func ValidRole(role string) bool {
	return rank(strings.ToUpper(strings.TrimSpace(role))) >= 0
}

// IsHR is true for HR and ADMIN.
func IsHR(role string) bool {
	return AtLeast(role, RoleHR)
}

func rank(role string) int {
	for i, r := range hierarchy {
		if r == role {
			return i
		}
	}
	return -1
}
