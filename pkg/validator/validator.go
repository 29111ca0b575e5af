package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// report JSON / form field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entities.Role(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
		a := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return a == entities.AudienceAll || entities.Role(a).IsValid()
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Messages turns validation errors into field -> message pairs
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "role":
		return "must be one of admin, teacher, parent"
	case "audience":
		return "must be a role or all"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %s rule", fe.Tag())
	}
}
