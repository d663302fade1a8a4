package spap

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	courseCodeTag   = "coursecode"
	courseCodeText  = "only letters, digits and dashes are allowed"
	courseCodeRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

	taskStatusTag  = "taskstatus"
	taskStatusText = "status must be 1 (TODO), 2 (IN PROGRESS) or 3 (DONE)"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(courseCodeTag, courseCodeValidation)
	RegisterCustomTranslation(courseCodeTag, courseCodeText)
	_ = Validate.RegisterValidation(taskStatusTag, taskStatusValidation)
	RegisterCustomTranslation(taskStatusTag, taskStatusText)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldErrors flattens a validation failure into per-field messages for
// display. Returns nil when err carries no field information.
func FieldErrors(err error) []FieldError {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		flds := make([]FieldError, 0, len(vErrs))
		for _, vErr := range vErrs {
			flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
		}
		return flds
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Fields
	}
	return nil
}

// Custom Validators

// courseCodeValidation only allows course codes like "ECED3410" or "CSCI-2110".
func courseCodeValidation(fl validator.FieldLevel) bool {
	return courseCodeRegex.MatchString(fl.Field().String())
}

// taskStatusValidation checks the status is one of the known lifecycle states.
func taskStatusValidation(fl validator.FieldLevel) bool {
	if status, ok := fl.Field().Interface().(TaskStatus); ok {
		return status.Valid()
	}
	return false
}
