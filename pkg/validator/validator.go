package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/equipstore/pkg/httpx"
)

// validate reports fields by their JSON names so error maps match request bodies.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// notblank rejects whitespace-only strings such as an equipment name of "  ".
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field's JSON name to a message.
// Errors other than validator.ValidationErrors yield an empty map.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

// fieldMessages renders one failed tag. Length and range tags read
// differently for numbers and strings.
var fieldMessages = map[string]func(e validator.FieldError) string{
	"required":   func(validator.FieldError) string { return "This field is required" },
	"notblank":   func(validator.FieldError) string { return "Must not be blank" },
	"printascii": func(validator.FieldError) string { return "Must contain only printable ASCII characters" },
	"min": func(e validator.FieldError) string {
		if isNumber(e) {
			return "Must be at least " + e.Param()
		}
		return "Minimum length is " + e.Param()
	},
	"max": func(e validator.FieldError) string {
		if isNumber(e) {
			return "Must be at most " + e.Param()
		}
		return "Maximum length is " + e.Param()
	},
	"gte":   func(e validator.FieldError) string { return "Must be greater than or equal to " + e.Param() },
	"lte":   func(e validator.FieldError) string { return "Must be less than or equal to " + e.Param() },
	"oneof": func(e validator.FieldError) string { return "Must be one of: " + e.Param() },
}

func formatFieldError(e validator.FieldError) string {
	if msg, ok := fieldMessages[e.Tag()]; ok {
		return msg(e)
	}
	return fmt.Sprintf("Validation failed on '%s'", e.Tag())
}

func isNumber(e validator.FieldError) bool {
	k := e.Kind()
	return k >= reflect.Int && k <= reflect.Float64
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an appropriate error response if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
