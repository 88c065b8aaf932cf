package preferenceerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var ErrInvalidTheme = apperror.New(
	apperror.CodeInvalidInput,
	"theme must be one of light, dark or system",
	http.StatusBadRequest,
)
