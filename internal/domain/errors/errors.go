package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidFeeType      = errors.New("invalid fee type")
	ErrInvalidFeeConfig    = errors.New("invalid fee config")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBackingViolation    = errors.New("backing invariant violation")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrContractPaused      = errors.New("contract paused")
	ErrSignerUnavailable   = errors.New("signer unavailable")
	ErrUserRejected        = errors.New("user rejected signing")
	ErrChainSubmission     = errors.New("chain submission failed")
	ErrStatusCheck         = errors.New("status check failed")
	ErrTimeout             = errors.New("observation window expired")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyTerminal     = errors.New("transaction already in terminal state")
)

// Retryable reports whether the caller may safely retry the operation that
// produced err. Only post-submission observation errors are retryable; a
// validation failure never is.
func Retryable(err error) bool {
	return errors.Is(err, ErrChainSubmission) || errors.Is(err, ErrStatusCheck)
}

// AppError represents an application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}

// Wrap annotates a domain error with operator-facing context (amounts,
// addresses, transaction ids) while keeping the sentinel matchable.
func Wrap(err error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
