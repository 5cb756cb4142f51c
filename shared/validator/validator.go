package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"shareit/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]val.Func{
		"notblank":  validators.NotBlank,
		"emailaddr": func(fl val.FieldLevel) bool { return IsEmail(fl.Field().String()) },
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// IsEmail reports whether value has an "@" followed later by a ".".
func IsEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	at := strings.Index(value, "@")
	dot := strings.LastIndex(value, ".")

	return at >= 0 && at < dot
}

// jsonFieldName makes error messages use the field name clients actually send.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validate decodes a JSON body into data and checks its `validate` tags.
// Both malformed JSON and rule violations come back as a 400 failure.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
