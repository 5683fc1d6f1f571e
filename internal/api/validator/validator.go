package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string      `json:"field"`
	Tag   string      `json:"tag"`
	Value interface{} `json:"value"`
}

type XValidator struct {
	validator *validator.Validate
}

func New() *XValidator {
	return &XValidator{validator: validator.New()}
}

func (v *XValidator) Validate(data interface{}) []FieldError {
	var errs []FieldError

	if err := v.validator.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, FieldError{
				Field: fieldErr.Field(),
				Tag:   fieldErr.Tag(),
				Value: fieldErr.Value(),
			})
		}
	}

	return errs
}

func Describe(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fieldErr.Field, fieldErr.Tag))
	}
	return strings.Join(parts, "; ")
}
