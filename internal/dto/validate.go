package dto

import (
	"fmt"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request struct against its validate tags and wraps any
// failure in apperrors.ErrValidation so callers can match with errors.Is.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
