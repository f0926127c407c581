package models

import (
	"errors"
	"fmt"
)

// ErrorNotFound is returned when no matching content or entity exists.
type ErrorNotFound struct {
	Entity string
}

func (e ErrorNotFound) Error() string {
	if e.Entity == "" {
		return "not found"
	}
	return e.Entity + " not found"
}

// ErrorConflict is returned on uniqueness violations.
type ErrorConflict struct {
	Entity string
	Reason string
}

func (e ErrorConflict) Error() string {
	if e.Reason == "" {
		return e.Entity + " already exists"
	}
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// ErrorStoreUnavailable means the persistence layer is unreachable or unconfigured.
type ErrorStoreUnavailable struct {
	Cause error
}

func (e ErrorStoreUnavailable) Error() string {
	if e.Cause == nil {
		return "store unavailable"
	}
	return "store unavailable: " + e.Cause.Error()
}

func (e ErrorStoreUnavailable) Unwrap() error {
	return e.Cause
}

// ErrorValidation reports malformed input.
type ErrorValidation struct {
	Field   string
	Message string
}

func (e ErrorValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewNotFound(entity string) error {
	return ErrorNotFound{Entity: entity}
}

func NewConflict(entity, reason string) error {
	return ErrorConflict{Entity: entity, Reason: reason}
}

func NewValidation(field, message string) error {
	return ErrorValidation{Field: field, Message: message}
}

func IsNotFound(err error) bool {
	var target ErrorNotFound
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ErrorConflict
	return errors.As(err, &target)
}

func IsStoreUnavailable(err error) bool {
	var target ErrorStoreUnavailable
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ErrorValidation
	return errors.As(err, &target)
}
