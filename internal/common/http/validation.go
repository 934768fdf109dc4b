package http

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the `validate` tags of a request DTO and folds the
// first failure into a VALIDATION domain error naming the offending field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return commonerrors.NewDomainError(
			CodeValidationFailed,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"validation failed",
		).WithCause(err)
	}

	fe := verrs[0]
	return commonerrors.NewDomainError(
		CodeValidationFailed,
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		validationMessage(fe),
	)
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

func ValidateUUID(s string) error {
	if s == "" {
		return commonerrors.ErrEmptyUUID
	}
	_, err := uuid.Parse(s)
	return err
}

// ExtractPostIDFromPath pulls the id segment out of /api/posts/{id}.
func ExtractPostIDFromPath(path string) (string, bool) {
	const prefix = "/api/posts/"

	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0], true
	}

	return "", false
}
