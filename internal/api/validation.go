package api

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shubh-37/social-content-engine/internal/agents"
)

// requestValidator wraps go-playground validator with the service's custom rules
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New()

	// Use JSON field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, err := agents.ProfileFor(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register platform validation: %v", err))
	}

	return &requestValidator{validate: validate}
}

// RequestError lists the fields that failed validation
type RequestError struct {
	Fields map[string]string `json:"fields"`
}

func (e *RequestError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(messages)
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

func (v *requestValidator) Validate(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = describe(fe)
	}
	return &RequestError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match layout %s", fe.Param())
	case "platform":
		return fmt.Sprintf("must be one of [%s]", strings.Join(agents.Platforms(), " "))
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
