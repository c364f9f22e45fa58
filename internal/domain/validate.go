package domain

import (
	"errors"  // ValidationErrors matching
	"reflect" // Struct field tags
	"strings" // Field name lists

	"github.com/go-playground/validator/v10"                         // Struct tag validation
	"github.com/go-playground/validator/v10/non-standard/validators" // notblank
)

// validate checks the same `binding` tags gin checks when it binds a request
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the JSON field names and the notblank tag on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(JSONFieldName)
	return v.RegisterValidation("notblank", validators.NotBlank)
}

// JSONFieldName names a struct field by its json tag so messages match the wire format
func JSONFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// CheckRequired validates the binding tags of v
func CheckRequired(v any) error {
	return RequiredFieldsError(validate.Struct(v))
}

// RequiredFieldsError turns validator failures into a ValidationError listing
// the offending fields. Other errors pass through unchanged.
func RequiredFieldsError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return Validation("All fields are required: " + strings.Join(names, ", "))
}

// IsEmail reports whether s is a well-formed email address
func IsEmail(s string) bool {
	return validate.Var(s, "email") == nil
}
