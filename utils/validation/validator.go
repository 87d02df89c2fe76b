package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/willowgate/school-api/utils/response"
)

var (
	// PhoneRegex accepts international formats with optional separators
	PhoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{6,19}$`)
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom phone rule registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhoneRegex.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Check validates s and returns every violated field, one entry per
// field, or nil when the struct is valid.
func (v *Validator) Check(s interface{}) []response.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return FormatValidationErrors(err)
}

// FormatValidationErrors converts validator errors into field entries
func FormatValidationErrors(err error) []response.FieldError {
	var out []response.FieldError

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	for _, e := range validationErrs {
		field := fieldName(e)
		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", field)
		case "email":
			msg = "Invalid email format"
		case "phone":
			msg = "Invalid phone number format"
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
		case "gte":
			msg = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
		case "lte":
			msg = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", field)
		}
		out = append(out, response.FieldError{Field: field, Message: msg})
	}

	return out
}

// fieldName converts the struct field name to its snake_case JSON form
func fieldName(e validator.FieldError) string {
	name := e.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
