package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/xavierca1/sales-os/internal/entity"
)

const defaultPhoneRegion = "BR"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Nome do campo no erro = tag json
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("leadstatus", func(fl validator.FieldLevel) bool {
		return entity.Status(fl.Field().String()).Valid()
	})
	return v
}

// ValidateStruct roda as tags `validate` e traduz para ValidationError.
func ValidateStruct(s any) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "leadstatus":
		return "must be one of new, in_negotiation, closed, lost"
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}

// NormalizeContactHandle converte telefones para dígitos E.164 (formato do
// WhatsApp, sem o "+"). O que não for telefone é mantido como veio.
func NormalizeContactHandle(raw string) string {
	handle := strings.TrimSpace(raw)
	if handle == "" || strings.Contains(handle, "@") {
		return handle
	}

	num, err := phonenumbers.Parse(handle, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return handle
	}
	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
}
