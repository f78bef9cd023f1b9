// Package validation wraps go-playground/validator with the project's custom
// tags and maps failures onto commonerrors.ErrValidation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

const (
	TagStrongPassword = "strongpassword"
	TagTaskStatus     = "taskstatus"
	TagNotBlank       = "notblank"
)

var taskStatuses = map[string]struct{}{
	"OPEN":        {},
	"IN_PROGRESS": {},
	"DONE":        {},
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(TagStrongPassword, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation(TagTaskStatus, func(fl validator.FieldLevel) bool {
		_, ok := taskStatuses[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a VALIDATION_FAILED domain error describing
// the first violated rule.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return commonerrors.ErrValidation.WithCause(err)
	}

	return commonerrors.ErrValidation.
		WithMessage(describe(fieldErrs[0])).
		WithCause(err)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", TagNotBlank:
		return fmt.Sprintf("%s should not be empty", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case TagStrongPassword:
		return "password too weak"
	case TagTaskStatus:
		return fmt.Sprintf("%s must be one of OPEN, IN_PROGRESS, DONE", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// IsStrongPassword requires an upper-case letter, a lower-case letter and a
// digit or non-word character.
func IsStrongPassword(s string) bool {
	var hasUpper, hasLower, hasDigitOrSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r), !isWordRune(r):
			hasDigitOrSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigitOrSymbol
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
