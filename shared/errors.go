package shared

import (
	"errors"
	"net/http"
)

const (
	CodeInvalidFormat      = "invalid_format"
	CodeInvalidCredentials = "invalid_credentials"
	CodeRateLimited        = "rate_limited"
	CodeUnauthorized       = "unauthorized"
	CodeInternalError      = "internal_error"
	CodeUnavailable        = "unavailable"
)

// AppError is an error that already knows how it should be rendered to the client.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, code, message string, err error) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Err:        err,
	}
}

func NewBadRequestError(err error, message string) *AppError {
	if message == "" {
		message = "Invalid form data"
	}
	return NewAppError(http.StatusBadRequest, CodeInvalidFormat, message, err)
}

func NewInvalidCredentialsError() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials", nil)
}

func NewUnauthorizedError() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized", nil)
}

func NewTooManyRequestsError() *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.", nil)
}

func NewInternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "Internal server error", err)
}

func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeUnavailable, message, nil)
}

// GetAppError unwraps err looking for an *AppError.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
