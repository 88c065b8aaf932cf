package perioderrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var (
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"acquisitive period not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConsistency,
		"period balance is lower than the requested deduction",
		http.StatusConflict,
	)
	ErrInvalidDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"deduction must be a positive number of days",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"available days must be between 0 and the entitled days",
		http.StatusBadRequest,
	)
)
