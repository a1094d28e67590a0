// Package validator wraps go-playground struct validation for the request
// payloads the POS screens submit.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError is one failed rule on one struct field
type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = validator.New()

func init() {
	// uuid.Nil unmarshals silently from a missing id, so "required" alone
	// does not catch it
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct reports every failed rule; an empty slice means valid
func ValidateStruct(data interface{}) []*FieldError {
	var errs []*FieldError
	if err := validate.Struct(data); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, &FieldError{
				Field: fe.StructNamespace(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return errs
}
