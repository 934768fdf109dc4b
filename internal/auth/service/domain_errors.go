package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)
)
