package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors. The typed errors below match these with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
)

// Borrow ledger conflicts
var (
	ErrBookAlreadyBorrowed = &ConflictError{Reason: "book already borrowed"}
	ErrMemberHasOverdue    = &ConflictError{Reason: "member has overdue books"}
	ErrAlreadyReturned     = &ConflictError{Reason: "already returned"}
)

// NotFoundError reports a missing entity
type NotFoundError struct {
	Entity string
	Field  string
	Value  interface{}
}

// NewNotFound creates a not-found error keyed by id
func NewNotFound(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, Field: "id", Value: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: '%v'", e.Entity, e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError reports a uniqueness violation
type AlreadyExistsError struct {
	Entity string
	Field  string
	Value  interface{}
}

// NewAlreadyExists creates a uniqueness violation error
func NewAlreadyExists(entity, field string, value interface{}) *AlreadyExistsError {
	return &AlreadyExistsError{Entity: entity, Field: field, Value: value}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists with %s: '%v'", e.Entity, e.Field, e.Value)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ConflictError reports a business rule violation
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// Is matches ErrConflict and any ConflictError with the same reason
func (e *ConflictError) Is(target error) bool {
	if target == ErrConflict {
		return true
	}
	t, ok := target.(*ConflictError)
	return ok && t.Reason == e.Reason
}

// ValidationError carries one "field: rule" entry per invalid field
type ValidationError struct {
	Fields []string
}

// NewValidation creates a validation error from field messages
func NewValidation(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
