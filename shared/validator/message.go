package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":  "{field} is required",
	"gt":        "{field} must be greater than {param}",
	"max":       "{field} must be at most {param} characters",
	"emailaddr": "{field} must be a valid email address",
	"notblank":  "{field} must not be blank",
}

// message renders the first violation that has a template.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		tmpl, ok := templates[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl)
	}

	return fieldErrors.Error()
}
