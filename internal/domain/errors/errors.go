package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrVersionConflict = errors.New("version conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ValidationDetail points at a single rejected input field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or missing input. It is always produced
// before any persistence access.
type ValidationError struct {
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends one field-level detail.
func (e *ValidationError) Add(field, message string) {
	e.Details = append(e.Details, ValidationDetail{Field: field, Message: message})
}

// Empty reports whether no detail has been collected.
func (e *ValidationError) Empty() bool {
	return len(e.Details) == 0
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: []ValidationDetail{{Field: field, Message: message}}}
}

// TransitionError reports a status move that violates the fulfillment
// sequence, such as skipping a step or leaving a terminal status.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// PreconditionError enumerates the pricing requirements still missing before
// an order may leave pending, so a caller can remediate each one.
type PreconditionError struct {
	MissingDeliveryPrice bool
	MissingDeliveryDate  bool
	UnpricedItemIDs      []uuid.UUID
}

func (e *PreconditionError) Error() string {
	var missing []string
	if e.MissingDeliveryPrice {
		missing = append(missing, "delivery price not set")
	}
	if e.MissingDeliveryDate {
		missing = append(missing, "delivery date not set")
	}
	if len(e.UnpricedItemIDs) > 0 {
		ids := make([]string, 0, len(e.UnpricedItemIDs))
		for _, id := range e.UnpricedItemIDs {
			ids = append(ids, id.String())
		}
		missing = append(missing, "unpriced custom items: "+strings.Join(ids, ", "))
	}
	return "order not ready to leave pending: " + strings.Join(missing, "; ")
}

// Failed reports whether any precondition is unmet.
func (e *PreconditionError) Failed() bool {
	return e.MissingDeliveryPrice || e.MissingDeliveryDate || len(e.UnpricedItemIDs) > 0
}

// RateLimitError is a guard rejection carrying retry metadata. It never
// escalates past the transport boundary.
type RateLimitError struct {
	RetryAfter time.Duration
	Limit      int
	Remaining  int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}
