// Package validation validates request DTOs at the HTTP boundary.
//
// Besides the stock go-playground tags it registers:
//
//	phone   "+" followed by 10-15 digits
//	money   a non-negative decimal written as text (e.g. a budget)
//
// decimal.Decimal fields validate as numbers, so gte/lte/min work on them.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "nestify/internal/errors"
)

var phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative()
	})

	return &Validator{validate: v}
}

// Validate implements echo.Validator. Failures come back as
// apperrors.ErrValidation with one readable message per field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Wrap(apperrors.ErrValidation, "invalid request", err)
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = translate(fe)
	}
	return apperrors.Validation(strings.Join(messages, "; "))
}

// IsPhone reports whether s is a valid "+"-prefixed 10-15 digit phone number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func translate(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "phone":
		return field + " must start with + followed by 10 to 15 digits"
	case "money":
		return field + " must be a non-negative number"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
