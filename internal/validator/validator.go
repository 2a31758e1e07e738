package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map for the client.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with JSON tag names and our custom rules.
func New() *Validator {
	v := validator.New()

	// Report field names the way they appear in the DTO JSON,
	// not the Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate runs struct validation and converts failures into
// *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Some other error (reflection etc.)
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at most %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
