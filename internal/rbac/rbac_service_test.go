package rbac

import (
	"testing"

	"go-vacation/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	e, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc := NewService(e)
	assert.NoError(t, svc.LoadPolicy())
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates leave", RoleEmployee, ResourceLeave, ActionCreate, true},
		{"employee may decide first step", RoleEmployee, ResourceLeave, ActionApproveManager, true},
		{"employee may reject", RoleEmployee, ResourceLeave, ActionReject, true},
		{"employee cannot approve final", RoleEmployee, ResourceLeave, ActionApproveFinal, false},
		{"employee cannot assign managers", RoleEmployee, ResourceProfile, ActionAssignManager, false},
		{"manager approves first step", RoleManager, ResourceLeave, ActionApproveManager, true},
		{"manager inherits employee grants", RoleManager, ResourceCalendar, ActionRead, true},
		{"manager cannot approve final", RoleManager, ResourceLeave, ActionApproveFinal, false},
		{"hr approves final", RoleHR, ResourceLeave, ActionApproveFinal, true},
		{"hr rejects through inherited grant", RoleHR, ResourceLeave, ActionReject, true},
		{"hr cannot read rbac", RoleHR, ResourceRBAC, ActionRead, false},
		{"hr cannot assign roles", RoleHR, ResourceUser, ActionAssignRole, false},
		{"admin assigns roles", RoleAdmin, ResourceUser, ActionAssignRole, true},
		{"admin inherits everything", RoleAdmin, ResourceLeave, ActionExport, true},
		{"lower case role normalised", "manager", ResourceLeave, ActionReject, true},
		{"unknown role falls back to employee", "INTERN", ResourceLeave, ActionApproveFinal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.role, tt.resource, tt.action)

			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_LoadPolicyIsRepeatable(t *testing.T) {
	svc := newTestService(t)

	assert.NoError(t, svc.LoadPolicy())

	perms, err := svc.PermissionsFor(RoleEmployee)
	assert.NoError(t, err)
	assert.Len(t, perms, len(grants[RoleEmployee]))
}

func TestService_PermissionsFor(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsFor(RoleHR)

	assert.NoError(t, err)
	assert.Contains(t, perms, Permission{ResourceLeave, ActionApproveFinal})
	assert.Contains(t, perms, Permission{ResourceLeave, ActionApproveManager})
	assert.Contains(t, perms, Permission{ResourceLeave, ActionCreate})
	assert.NotContains(t, perms, Permission{ResourceRBAC, ActionRead})
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, IsHR(RoleAdmin))
	assert.True(t, IsHR("hr"))
	assert.False(t, IsHR(RoleManager))
	assert.True(t, AtLeast(RoleManager, RoleEmployee))
	assert.False(t, AtLeast("", RoleEmployee))
	assert.Equal(t, RoleEmployee, NormalizeRole(" "))
	assert.True(t, ValidRole(" hr "))
	assert.False(t, ValidRole("INTERN"))
}
