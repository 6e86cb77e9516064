package errs

import (
	"errors"
	"net/http"
)

var ErrMissingRequiredField = errors.New("missing required field")

// NewMissingFieldsError is the single message the write path returns when
// any required project field is absent. The admin UI keys on the exact text.
func NewMissingFieldsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New("Missing required fields"),
		Cause:      ErrMissingRequiredField,
	}
}

// NewValidationError reports a single malformed field with its client-facing
// message.
func NewValidationError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New(message),
		Field:      field,
	}
}
