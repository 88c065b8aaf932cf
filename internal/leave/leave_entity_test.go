package leave_test

import (
	"testing"

	"go-vacation/internal/leave"
	leaveerrors "go-vacation/internal/leave/errors"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		name   string
		from   leave.Status
		action leave.Action
		mode   leave.ApprovalMode
		want   leave.Status
		err    error
	}{
		{"manager approve moves to hr", leave.StatusPendingManager, leave.ActionManagerApprove, leave.ModeTwoStep, leave.StatusPendingHR, nil},
		{"manager approve is final in one step", leave.StatusPendingManager, leave.ActionManagerApprove, leave.ModeOneStep, leave.StatusApprovedFinal, nil},
		{"manager reject", leave.StatusPendingManager, leave.ActionReject, leave.ModeTwoStep, leave.StatusRejected, nil},
		{"final approve", leave.StatusPendingHR, leave.ActionFinalApprove, leave.ModeTwoStep, leave.StatusApprovedFinal, nil},
		{"hr reject", leave.StatusPendingHR, leave.ActionReject, leave.ModeTwoStep, leave.StatusRejected, nil},
		{"final approve skips manager", leave.StatusPendingManager, leave.ActionFinalApprove, leave.ModeTwoStep, leave.StatusPendingManager, leaveerrors.ErrInvalidStatusTransition},
		{"manager approve twice", leave.StatusPendingHR, leave.ActionManagerApprove, leave.ModeTwoStep, leave.StatusPendingHR, leaveerrors.ErrInvalidStatusTransition},
		{"approved is terminal", leave.StatusApprovedFinal, leave.ActionReject, leave.ModeTwoStep, leave.StatusApprovedFinal, leaveerrors.ErrInvalidStatusTransition},
		{"rejected is terminal", leave.StatusRejected, leave.ActionFinalApprove, leave.ModeTwoStep, leave.StatusRejected, leaveerrors.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Next(tt.action, tt.mode)

			assert.Equal(t, tt.want, got)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseApprovalMode(t *testing.T) {
	assert.Equal(t, leave.ModeOneStep, leave.ParseApprovalMode("one_step"))
	assert.Equal(t, leave.ModeTwoStep, leave.ParseApprovalMode("two_step"))
	assert.Equal(t, leave.ModeTwoStep, leave.ParseApprovalMode(""))
}

func TestLeave_AllocatedDays(t *testing.T) {
	l := leave.Leave{Allocations: []leave.Allocation{{Days: 4}, {Days: 10}}}

	assert.Equal(t, 14, l.AllocatedDays())
	assert.True(t, leave.StatusPendingHR.IsPending())
	assert.False(t, leave.StatusRejected.IsPending())
	assert.True(t, leave.StatusRejected.IsTerminal())
}
