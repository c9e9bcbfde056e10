package service

import (
	"errors"
	"fmt"

	"github.com/shopims/shopims-backend/pkg/validator"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientStock  = errors.New("insufficient stock remaining")
	ErrDuplicateBarcode   = errors.New("barcode already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// ValidationError is a create/update rejected before any write.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

// validateStruct maps the first validator failure to a ValidationError.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
