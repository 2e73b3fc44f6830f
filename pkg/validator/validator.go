package validator

import (
	"github.com/go-playground/validator/v10"
)

// StructValidator wraps go-playground/validator for entity validation.
type StructValidator struct {
	v *validator.Validate
}

// New creates a new StructValidator instance
func New() *StructValidator {
	v := validator.New()
	return &StructValidator{v: v}
}

// Validate performs struct validation
func (sv *StructValidator) Validate(i interface{}) error {
	return sv.v.Struct(i)
}
