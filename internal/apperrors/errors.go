package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPermission indicates that the actor is not the assignee, creator or signer the operation requires.
var ErrPermission = errors.New("permission denied")

// ErrConflict indicates that the operation is not legal in the entity's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrAlreadySigned is a conflict raised when a placeholder is re-signed with different data.
var ErrAlreadySigned = fmt.Errorf("%w: placeholder already signed", ErrConflict)

// ErrConfiguration indicates a missing vocabulary row or other deployment defect.
var ErrConfiguration = errors.New("configuration error")

// ErrSideEffect indicates a failed notification, mail or activity-log write.
var ErrSideEffect = errors.New("side effect failed")

// ErrUnauthorized indicates a missing or invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated user that is inactive or deleted.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP status, a human readable message, the failure kind
// and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError creates an internal error with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError reports a missing (or soft-deleted) entity.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
		Kind:    ErrNotFound,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrValidation}
}

func NewPermissionError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Kind: ErrPermission}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Kind: ErrConflict}
}

// NewAlreadySignedError is a conflict that also matches ErrAlreadySigned.
func NewAlreadySignedError(placeholderID string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("placeholder %s is already signed with different data", placeholderID),
		Kind:    ErrAlreadySigned,
	}
}

func NewConfigurationError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrConfiguration, Err: err}
}

func NewSideEffectError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrSideEffect, Err: err}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Kind: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Kind: ErrForbidden}
}

// Kind returns a stable, lower-case name for the failure kind of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrDuplicate):
		return "conflict"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrSideEffect):
		return "side_effect"
	default:
		return "internal"
	}
}

// HTTPStatus maps err onto the status code a handler should answer with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "permission", "forbidden":
		return http.StatusForbidden
	case "conflict":
		return http.StatusConflict
	case "unauthorized":
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message of err, hiding internal causes.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != nil {
		return appErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
