// Package validation runs struct-tag rules over input payloads and turns
// failures into domain.ValidationError values the API can report per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/victim-store/internal/domain"
)

// Validator wraps a configured *validator.Validate. It is safe for
// concurrent use once constructed.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json tag name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a *domain.ValidationError listing every
// violated field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Message: message(fe.Field(), fe),
		})
	}
	return out
}

// Var validates a single value against tag and names it field in the
// returned *domain.ValidationError.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", field, err)
	}

	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{Field: field, Message: message(field, fe)})
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "max":
		return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "eqfield":
		return fmt.Sprintf("The %s field must match %s", field, strings.ToLower(fe.Param()))
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("The %s field failed %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("The %s field failed %s", field, fe.Tag())
	}
}
