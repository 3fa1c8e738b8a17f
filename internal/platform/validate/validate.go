// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Rules are ozzo-validation rules. The catalog core accepts any entity
// content, so validation only guards the transport boundary: decodable
// payloads, numeric identifiers and parent references.
package validate

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/taibuivan/lmscatalog/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Check applies ozzo rules to value and records the first failure under field.
func (v *Validator) Check(field string, value any, rules ...validation.Rule) *Validator {
	if err := validation.Validate(value, rules...); err != nil {
		v.add(field, err.Error())
	}
	return v
}

// Required fails if value is the zero value of its type.
func (v *Validator) Required(field string, value any) *Validator {
	return v.Check(field, value, validation.Required)
}

// Reference fails unless id could identify a stored row.
func (v *Validator) Reference(field string, id int64) *Validator {
	return v.Check(field, id, validation.Required, validation.Min(int64(1)))
}

// Custom adds a failure with a custom message if the condition is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// ParseID converts a path segment into a row identifier.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   field,
			Message: "must be an integer",
		})
	}
	return id, nil
}
