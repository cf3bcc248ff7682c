package dto

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/reinaldotineo/portfolio_api/shared"
)

var validate *validator.Validate

// local@domain.tld with no whitespace and a single @.
var simpleEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// strictJSON rejects keys a request type does not declare.
var strictJSON = sonic.Config{
	DisallowUnknownFields: true,
}.Froze()

var (
	intakeEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
	chatEscaper   = strings.NewReplacer("<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#x27;")
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("simple_email", validateSimpleEmail)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return IsSimpleEmail(fl.Field().String())
}

func IsSimpleEmail(value string) bool {
	return simpleEmailRegex.MatchString(value)
}

// decodeStrict turns raw into dst. A body that is not JSON at all is an
// internal error; JSON of the wrong shape is a validation error.
func decodeStrict(raw []byte, dst interface{}) error {
	if !strictJSON.Valid(raw) {
		return shared.NewInternalError(errors.New("request body is not valid JSON"))
	}
	if err := strictJSON.Unmarshal(raw, dst); err != nil {
		return shared.NewBadRequestError(err, "")
	}
	return nil
}

func validateStruct(v interface{}) error {
	return validateStructWithMessage(v, "")
}

func validateStructWithMessage(v interface{}, message string) error {
	if err := GetValidator().Struct(v); err != nil {
		return shared.NewBadRequestError(err, message)
	}
	return nil
}

// SanitizeIntake escapes angle brackets and truncates to max runes.
func SanitizeIntake(input string, max int) string {
	return Truncate(intakeEscaper.Replace(input), max)
}

// SanitizeChat escapes angle brackets and quotes and truncates to max runes.
func SanitizeChat(input string, max int) string {
	return Truncate(chatEscaper.Replace(input), max)
}

func Truncate(input string, max int) string {
	if max <= 0 || utf8.RuneCountInString(input) <= max {
		return input
	}
	runes := []rune(input)
	return string(runes[:max])
}

func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "simple_email":
				message = "Invalid email format"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errs = append(errs, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errs
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
