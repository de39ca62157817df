package validator

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/whatsapp-message-relay/pkg/response"
)

const (
	ReasonMissingFields  = "missing_fields"
	ReasonBadCountryCode = "bad_country_code"
	ReasonInvalid        = "invalid"

	// country_code is a built-in alias for ISO 3166 codes, so the "+" rule needs its own tag.
	tagPlusPrefix = "plus_prefix"
)

var reasonMessages = map[string]string{
	ReasonMissingFields:  "Phone number and message are required",
	ReasonBadCountryCode: "Phone number must include country code (e.g., +1234567890)",
	ReasonInvalid:        "Invalid request",
}

// CustomValidator wraps the validator instance for Echo.
type CustomValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

func New() *CustomValidator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := field.Tag.Get("json")
		if tag == "" {
			return field.Name
		}

		name := strings.SplitN(tag, ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	if err := validate.RegisterValidation(tagPlusPrefix, hasPlusPrefix); err != nil {
		panic("failed to register plus_prefix validation: " + err.Error())
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic("failed to register validator default translations: " + err.Error())
	}

	registerPlusPrefixTranslation(validate, trans)

	return &CustomValidator{
		validator:  validate,
		translator: trans,
	}
}

// hasPlusPrefix checks the raw value, so surrounding whitespace fails the check.
func hasPlusPrefix(fl validator.FieldLevel) bool {
	return strings.HasPrefix(fl.Field().String(), "+")
}

func registerPlusPrefixTranslation(validate *validator.Validate, trans ut.Translator) {
	_ = validate.RegisterTranslation(
		tagPlusPrefix,
		trans,
		func(ut ut.Translator) error {
			return ut.Add(tagPlusPrefix, "{0} must start with a '+' country code", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tagPlusPrefix, fe.Field())
			return msg
		},
	)
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{
				Reason: reasonFor(validationErrors),
				Errors: cv.translateErrors(validationErrors),
			}
		}
		return err
	}
	return nil
}

// reasonFor picks a single reason. Missing fields win over a bad prefix.
func reasonFor(errs validator.ValidationErrors) string {
	reason := ReasonInvalid
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			return ReasonMissingFields
		case tagPlusPrefix:
			reason = ReasonBadCountryCode
		}
	}
	return reason
}

func (cv *CustomValidator) translateErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		out[field] = err.Translate(cv.translator)
	}
	return out
}

type ValidationError struct {
	Reason string            `json:"reason"`
	Errors map[string]string `json:"errors"`
}

// Message is the human readable text shown to callers.
func (e *ValidationError) Message() string {
	if msg, ok := reasonMessages[e.Reason]; ok {
		return msg
	}
	return reasonMessages[ReasonInvalid]
}

func (e *ValidationError) Error() string {
	var messages []string
	for field, msg := range e.Errors {
		messages = append(messages, field+": "+msg)
	}
	return e.Reason + ": " + strings.Join(messages, "; ")
}

// HandleValidationError writes a 400 envelope for validation and bind failures.
// Validation failures carry the translated per-field messages in the error field.
func HandleValidationError(c echo.Context, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return response.Failure(c, http.StatusBadRequest, ve.Message(), ve.Errors)
	}
	return response.BadRequest(c, err)
}
