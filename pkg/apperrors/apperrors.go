// Package apperrors defines the closed set of domain error variants and
// their mapping to transport codes. Validation and not-found errors are
// raised before any ledger write; insufficient-stock and conflict errors are
// raised inside the atomic check-and-write unit. Anything else is internal.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// InsufficientStockError carries the quantities the availability check saw,
// so the caller can tell how far short the request fell.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	AtSource  bool
}

func (e *InsufficientStockError) Error() string {
	if e.AtSource {
		return fmt.Sprintf("Insufficient stock at source. Available: %s, Requested: %s", e.Available, e.Requested)
	}
	return fmt.Sprintf("Insufficient stock. Available: %s, Requested: %s", e.Available, e.Requested)
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(message string) error {
	return &ConflictError{Message: message}
}

// WrapDB translates driver-level failures into the taxonomy: unique
// violations become conflicts, foreign key violations become validation
// failures. Everything else stays wrapped as-is and maps to internal.
func WrapDB(err error, context string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return NewConflict(context + " already exists")
		case "23503":
			return NewValidation(context + " references a missing row")
		}
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Code returns the taxonomy code for err, defaulting to INTERNAL_ERROR.
func Code(err error) string {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		insufficient *InsufficientStockError
		conflict     *ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return CodeValidation
	case errors.As(err, &notFound):
		return CodeNotFound
	case errors.As(err, &insufficient):
		return CodeInsufficientStock
	case errors.As(err, &conflict):
		return CodeConflict
	default:
		return CodeInternal
	}
}

// HTTPStatus maps err onto the status the request layer must answer with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeValidation, CodeInsufficientStock:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Payload returns the HTTP status and the response body for err, in the
// {"error": {"code", "message"}} shape callers depend on. Internal errors
// are not echoed back verbatim.
func Payload(err error) (int, any) {
	code := Code(err)
	message := err.Error()
	if code == CodeInternal {
		message = "An unexpected error occurred"
	}
	return HTTPStatus(err), map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}
