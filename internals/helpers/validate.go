// file: internals/helpers/validate.go
package helper

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = func() *validator.Validate {
	v := validator.New()
	// report field names as their json tag so messages match the payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}()

// ValidateStruct runs the DTO's validate tags and returns a 400 fiber error
// describing the first failing field in plain language.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	return fiber.NewError(fiber.StatusBadRequest, messageFor(verrs[0]))
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("field %s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("field %s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("field %s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("field %s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("field %s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("field %s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("field %s must be at most %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("field %s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return fmt.Sprintf("field %s must be a valid UUID", field)
	default:
		return fmt.Sprintf("field %s is invalid (%s)", field, fe.Tag())
	}
}
