// Package validator checks request payloads with go-playground/validator and
// reports failures keyed by their JSON field names.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/harmony-ledger/harmony/internal/domain"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// Validator validates request structs.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// ValidationError maps JSON field names to human readable messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	if len(v) == 0 {
		return "validation error"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Message returns the message of the alphabetically first failing field.
func (v ValidationError) Message() string {
	if len(v) == 0 {
		return "validation error"
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return v[fields[0]]
}

// Details returns the field map in the shape used by error envelopes.
func (v ValidationError) Details() map[string]any {
	details := make(map[string]any, len(v))
	for field, msg := range v {
		details[field] = msg
	}
	return details
}

// New constructs a Validator with English translations and the ledger rules.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}
	if err := registerCustom(validate, enTrans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: enTrans}, nil
}

// Validate returns a ValidationError when data breaks any rule.
func (v *Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		result[fe.Field()] = fe.Translate(v.translator)
	}
	return result
}

func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "params"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func registerCustom(validate *validator.Validate, trans ut.Translator) error {
	rules := []struct {
		tag     string
		message string
		fn      validator.Func
	}{
		{
			tag:     "nonblank",
			message: "{0} cannot be empty",
			fn: func(fl validator.FieldLevel) bool {
				return strings.TrimSpace(fl.Field().String()) != ""
			},
		},
		{
			tag:     "quantity",
			message: "{0} must be a decimal number",
			fn: func(fl validator.FieldLevel) bool {
				_, err := domain.ParseQuantity(fl.Field().String())
				return err == nil
			},
		},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}
		message := rule.message
		if err := validate.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(rule.tag, message, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		); err != nil {
			return err
		}
	}
	return nil
}
