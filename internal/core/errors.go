package core

import (
	"errors"
	"fmt"
)

// ValidationKind names why a piece of user input was rejected.
type ValidationKind string

const (
	KindMissingField   ValidationKind = "missing_field"
	KindInvalidNumber  ValidationKind = "invalid_number"
	KindNegativeAmount ValidationKind = "negative_amount"
	KindInvalidDate    ValidationKind = "invalid_date"
	KindInvalidType    ValidationKind = "invalid_type"
	KindTooLong        ValidationKind = "too_long"
	KindNotFound       ValidationKind = "not_found"
)

// ValidationError is returned for rejected input. Nothing is written when
// one is returned.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AsValidation reports whether err carries a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NotFound builds the validation error used when an id no longer exists.
func NotFound(field string, id int64) *ValidationError {
	return &ValidationError{Kind: KindNotFound, Field: field, Value: fmt.Sprint(id), Err: ErrNotFound}
}
