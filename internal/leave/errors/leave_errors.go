package leaveerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

// Request Validator rules, checked in this order.
var (
	ErrEndBeforeStart = apperror.New(
		apperror.CodeValidation,
		"end date cannot be before start date",
		http.StatusBadRequest,
	)
	ErrBelowMinimumDays = apperror.New(
		apperror.CodeValidation,
		"leave must span a minimum of 10 days",
		http.StatusBadRequest,
	)
	ErrTenureNotReached = apperror.New(
		apperror.CodeValidation,
		"leave can only start one year after the hire date",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeValidation,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrDateConflict = apperror.New(
		apperror.CodeValidation,
		"someone in your org unit already has approved leave in these dates",
		http.StatusBadRequest,
	)
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrProfileRequired = apperror.New(
		apperror.CodeForbidden,
		"an employee profile is required to request leave",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester can change this leave",
		http.StatusForbidden,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to decide on this leave",
		http.StatusForbidden,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"leave can only be edited while pending manager review",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusConflict,
	)
	ErrBalanceChanged = apperror.New(
		apperror.CodeConsistency,
		"leave balance changed since the request was planned, please retry",
		http.StatusConflict,
	)
	ErrAllocationShortfall = apperror.New(
		apperror.CodeInternalError,
		"allocation plan does not cover the requested days",
		http.StatusInternalServerError,
	)
)
