package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Domain vocabularies: template ids, media anchors and component types
	// are all closed sets.
	_ = v.RegisterValidation("template_id", func(fl validator.FieldLevel) bool {
		_, err := LookupTemplate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("media_anchor", func(fl validator.FieldLevel) bool {
		return IsValidAnchor(fl.Field().String())
	})
	_ = v.RegisterValidation("component_type", func(fl validator.FieldLevel) bool {
		return IsValidComponentType(fl.Field().String())
	})

	return v
}

func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	// Format validation errors
	var errors []string
	for _, err := range err.(validator.ValidationErrors) {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errors = append(errors, field+" is required")
		case "min":
			errors = append(errors, field+" must be at least "+param+" characters")
		case "max":
			errors = append(errors, field+" must be at most "+param+" characters")
		case "email":
			errors = append(errors, field+" must be a valid email")
		case "template_id":
			errors = append(errors, field+" must be a known template id")
		case "media_anchor":
			errors = append(errors, field+" must be a valid media insertion anchor")
		case "component_type":
			errors = append(errors, field+" must be a valid component type")
		default:
			errors = append(errors, field+" is invalid")
		}
	}

	return fmt.Errorf("%s", strings.Join(errors, ", "))
}
