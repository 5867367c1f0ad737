package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"estagio/internal/common"
)

var validate = newValidator()

// newValidator reports violations under the JSON field names the clients
// actually send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return common.NewValidationError("request body is required", nil)
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return common.NewValidationError("request body too large", nil)
		}
		return common.NewValidationError("invalid json body", nil)
	}
	return nil
}

func validateStruct(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return common.NewValidationError("invalid request", nil)
	}
	details := make(map[string]string, len(violations))
	for _, violation := range violations {
		details[violation.Field()] = violationMessage(violation)
	}
	return common.NewValidationError("invalid request", details)
}

func violationMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must have at least " + violation.Param() + " characters"
	case "max":
		return "must have at most " + violation.Param() + " characters"
	case "gte":
		return "must be at least " + violation.Param()
	default:
		return "invalid value"
	}
}

// idFromPath extracts a UUID segment counting from the end of the path, so
// "/vagas/{id}" is position 1 and "/candidaturas/{id}/status" is position 2.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < fromEnd {
		return "", common.NewValidationError("missing id in path", nil)
	}
	raw := segments[len(segments)-fromEnd]
	id, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "must be a valid uuid"})
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
