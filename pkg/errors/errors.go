package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAuthConfig       = errors.New("authentication misconfigured")
	ErrForbidden        = errors.New("forbidden")
	ErrRateLimited      = errors.New("rate limited")
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInternalServer   = errors.New("internal server error")
)

// Error codes carried on the wire.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeInvalidToken   = "INVALID_TOKEN"
	CodeAuthConfig     = "AUTH_CONFIG_ERROR"
	CodeForbidden      = "FORBIDDEN"
	CodeRateLimited    = "RATE_LIMITED"
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeBadRequest     = "BAD_REQUEST"
	CodeInternalServer = "INTERNAL_SERVER_ERROR"
)

// AppError is a classified failure. StatusCode, Code, Message and Details are
// rendered to the client verbatim; Err stays server-side.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
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

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Constructors
func Unauthorized(msg string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg, Err: ErrUnauthorized}
}

// InvalidToken keeps cause for logging; the client only sees msg.
func InvalidToken(msg string, cause error) *AppError {
	err := ErrInvalidToken
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidToken, cause)
	}
	return &AppError{StatusCode: http.StatusUnauthorized, Code: CodeInvalidToken, Message: msg, Err: err}
}

func AuthConfig(msg string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: CodeAuthConfig, Message: msg, Err: ErrAuthConfig}
}

func Forbidden(msg string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: msg, Err: ErrForbidden}
}

func RateLimited(msg string) *AppError {
	return &AppError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited, Message: msg, Err: ErrRateLimited}
}

func Validation(msg string, details any) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: CodeValidation, Message: msg, Details: details, Err: ErrValidation}
}

func NotFound(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: msg, Err: ErrNotFound}
}

func BadRequest(msg string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: CodeBadRequest, Message: msg, Err: ErrBadRequest}
}

// HTTPStatus builds an AppError for a framework-level status that has no
// dedicated constructor.
func HTTPStatus(status int, code string) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: http.StatusText(status), Err: statusSentinel(status)}
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusUnsupportedMediaType:
		return ErrUnsupportedMedia
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

func InternalServer(msg string, err error) *AppError {
	if err == nil {
		err = ErrInternalServer
	}
	return &AppError{StatusCode: http.StatusInternalServerError, Code: CodeInternalServer, Message: msg, Err: err}
}
