package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the wire field name, not the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Struct validates a request DTO and collects every violation into a
// field→message map. Returns nil when the value is valid.
func Struct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": "invalid request body"}
	}

	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		fields[v.Field()] = message(v)
	}
	return fields
}

func message(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "Invalid email format"
	case "min":
		if v.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", v.Param())
		}
		return fmt.Sprintf("must be at least %s", v.Param())
	case "max":
		if v.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", v.Param())
		}
		return fmt.Sprintf("must be at most %s", v.Param())
	default:
		return "is invalid"
	}
}
