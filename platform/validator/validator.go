// Package validator wraps go-playground/validator with the conventions the
// HTTP layer relies on.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

// New reports failing fields by their JSON (or form) name rather than the Go
// field name, so error details match the request body the client sent.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return &Validator{v: v}
}

func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// RegisterOneOf registers tag as a case-insensitive membership check against
// allowed. Empty values pass; pair with required where needed.
func (val *Validator) RegisterOneOf(tag string, allowed ...string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[strings.ToLower(a)] = struct{}{}
	}
	return val.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		if value == "" {
			return true
		}
		_, ok := set[value]
		return ok
	})
}

// Fields flattens validation failures into field name -> failed rule.
// Returns nil when err is not a validation error.
func Fields(err error) map[string]string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
