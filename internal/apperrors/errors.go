package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError means a required input is missing or malformed.
// Surfaced to the caller as a 400, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced driver/route/trip/settlement does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity and ID.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// BusinessRuleError means the operation is well-formed but breaks a
// money rule: zero-amount settlement, deleting a paid settlement,
// reverting paid to pending.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewBusinessRule builds a BusinessRuleError from a format string.
func NewBusinessRule(format string, args ...interface{}) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// UnknownPaymentPreferenceError is a data-integrity failure: a stored
// driver carries a preference the calculator does not know. Upstream
// validation makes this unreachable for well-formed data, so it is
// logged prominently and never silently defaulted.
type UnknownPaymentPreferenceError struct {
	Preference string
}

func (e *UnknownPaymentPreferenceError) Error() string {
	return fmt.Sprintf("unknown payment preference: %q", e.Preference)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsBusinessRule reports whether err is a BusinessRuleError.
func IsBusinessRule(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}
