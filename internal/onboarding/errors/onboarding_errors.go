package onboardingerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var (
	ErrProfileRequired = apperror.New(
		apperror.CodeNotFound,
		"an employee profile is required for onboarding",
		http.StatusNotFound,
	)
	ErrAlreadyOnboarded = apperror.New(
		apperror.CodeInvalidState,
		"onboarding is already complete",
		http.StatusConflict,
	)
	ErrUnknownPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period does not belong to this profile",
		http.StatusBadRequest,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeInvalidInput,
		"each period can only be adjusted once",
		http.StatusBadRequest,
	)
)
