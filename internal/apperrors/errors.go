package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindState          Kind = "state"
	KindAuthorization  Kind = "authorization"
	KindAuthentication Kind = "authentication"
	KindInternal       Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError keeps the status-code driven constructor used by the HTTP layer.
// The kind is derived from the code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Kind: kindFor(code), Message: message, Err: err}
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// ValidationWrap is Validation keeping the parse or decode error as the cause.
func ValidationWrap(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

func State(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

func Authorization(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

func Authentication(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

func Internal(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func kindFor(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindState
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusUnauthorized:
		return KindAuthentication
	default:
		return KindInternal
	}
}
