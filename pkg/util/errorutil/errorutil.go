package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by the service layer and the HTTP envelope.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDeletionFailed     = "DELETION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. Matching is done on Code, so any DomainError
// carrying the same code satisfies errors.Is regardless of its message.
var (
	ErrInvalidArgument    = &DomainError{Code: CodeInvalidArgument, Message: "invalid argument", HTTPStatus: http.StatusBadRequest}
	ErrDuplicateEmail     = &DomainError{Code: CodeDuplicateEmail, Message: "Email already exists", HTTPStatus: http.StatusConflict}
	ErrNotFound           = &DomainError{Code: CodeNotFound, Message: "not found", HTTPStatus: http.StatusNotFound}
	ErrInvalidToken       = &DomainError{Code: CodeInvalidToken, Message: "invalid token", HTTPStatus: http.StatusUnauthorized}
	ErrInvalidCredentials = &DomainError{Code: CodeInvalidCredentials, Message: "Invalid email or password", HTTPStatus: http.StatusUnauthorized}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidArgument(message string) error {
	return NewDomainError(CodeInvalidArgument, message, http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidArgument, message, http.StatusBadRequest, details)
}

func NewDuplicateEmail(email string) error {
	return NewDomainError(CodeDuplicateEmail, "Email already exists", http.StatusConflict, map[string]any{"email": email})
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInvalidToken(err error) error {
	return &DomainError{
		Code:       CodeInvalidToken,
		Message:    "invalid token",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// DeletionError reports a store failure while removing a product.
type DeletionError struct {
	ProductID string
	Err       error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("Error deleting product ID %s: %v", e.ProductID, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// NewDeletionError wraps cause for the given product.
func NewDeletionError(productID string, cause error) error {
	return &DeletionError{ProductID: productID, Err: cause}
}

// ToDomainError converts generic errors to DomainError. A DeletionError keeps
// its DELETION_FAILED code whatever its cause.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var delErr *DeletionError
	if errors.As(err, &delErr) {
		return &DomainError{
			Code:       CodeDeletionFailed,
			Message:    delErr.Error(),
			HTTPStatus: http.StatusInternalServerError,
			Details:    map[string]any{"product_id": delErr.ProductID},
			Err:        delErr.Err,
		}
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
