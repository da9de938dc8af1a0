// Package validation checks request payloads before any write is attempted.
//
// Rules live on the input structs as go-playground/validator tags. This
// package turns the validator's output into a flat list of
// {field, message} pairs: one entry per failed rule, every rule evaluated.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/library-api/internal/types"
)

// FieldError is one violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps a configured *validator.Validate. It caches struct
// metadata, so build one per process and share it between handlers.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their JSON name ("studentId", not "StudentID").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// A quantity that is not an integer at all is presented to the rules as
	// -1 so that min=0 rejects it with the same message as a negative one.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		q, ok := field.Interface().(types.Quantity)
		if !ok {
			return nil
		}
		if n, ok := q.Int(); ok {
			return n
		}
		return -1
	}, types.Quantity{})

	return &Validator{v: v}
}

// Struct validates s and returns every violation, or nil when s is valid.
func (val *Validator) Struct(s any) []FieldError {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe, label(t, fe)),
		})
	}
	return out
}

func label(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
	}
	return fe.StructField()
}

func message(fe validator.FieldError, label string) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must be a positive number", label)
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
