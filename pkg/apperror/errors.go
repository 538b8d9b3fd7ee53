package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string   `json:"error_code"`
	Message    string   `json:"message"`
	Details    []string `json:"details,omitempty"` // Aggregated rule violations for validation errors
	HTTPStatus int      `json:"-"`
	Err        error    `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// ErrValidation aggregates one or more rule violations. No unit of work is
// opened for a request that fails validation.
func ErrValidation(violations ...string) *AppError {
	return &AppError{
		Code:       "VAL_001",
		Message:    "Validation failed",
		Details:    violations,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation returns a single-message validation error.
func Validation(message string) *AppError {
	return ErrValidation(message)
}

// ---- Ledger Business Logic (LGR) ----

func ErrInsufficientFunds() *AppError {
	return New("LGR_001", "Insufficient funds in source account", http.StatusPaymentRequired)
}

func ErrNotFound(entity string) *AppError {
	return New("LGR_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrAccountNotFound() *AppError {
	return ErrNotFound("Account")
}

// ---- Payment Gateway (GW) ----

// ErrGatewayDeclined reports a failed external confirmation. It always
// short-circuits before any store mutation.
func ErrGatewayDeclined(message string) *AppError {
	if message == "" {
		message = "Payment confirmation declined"
	}
	return New("GW_001", message, http.StatusBadGateway)
}

func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GW_002", "Payment gateway unavailable", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an unexpected failure as a SYS_001 error. On a write
// path the active unit of work has been rolled back by the caller.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
