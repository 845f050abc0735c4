package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. Code is internal diagnostics;
// Message is what the client sees.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewInvalidInput flags a client-correctable request defect.
func NewInvalidInput(message string) error {
	return NewDomainError("INVALID_INPUT", message, http.StatusBadRequest)
}

// NewInvalidCredentials covers both unknown email and wrong password so the
// two cases stay indistinguishable to the caller.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
}

// NewUnauthorized signals a missing credential on a protected route.
func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

// NewDuplicateEmail signals a registration conflict.
func NewDuplicateEmail() error {
	return NewDomainError("DUPLICATE_EMAIL", "Email already registered", http.StatusConflict)
}

// NewRateLimited signals a throttled login attempt.
func NewRateLimited() error {
	return NewDomainError("RATE_LIMITED", "Too many attempts, try again later", http.StatusTooManyRequests)
}

// Token rejection reasons keep distinct codes for diagnostics but share one
// client-visible 403 message, so probes learn nothing about why a token failed.
const tokenRejectedMessage = "Invalid or expired token"

func NewMalformedToken(err error) error {
	return &DomainError{Code: "MALFORMED_TOKEN", Message: tokenRejectedMessage, HTTPStatus: http.StatusForbidden, Err: err}
}

func NewInvalidSignature(err error) error {
	return &DomainError{Code: "INVALID_SIGNATURE", Message: tokenRejectedMessage, HTTPStatus: http.StatusForbidden, Err: err}
}

func NewTokenExpired(err error) error {
	return &DomainError{Code: "TOKEN_EXPIRED", Message: tokenRejectedMessage, HTTPStatus: http.StatusForbidden, Err: err}
}

// NewInternalError wraps an unexpected failure; the cause is logged
// server-side and never shown to the client.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
