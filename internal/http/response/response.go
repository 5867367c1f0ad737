package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"estagio/internal/common"
)

// ErrorCollector counts error responses; nil disables collection.
type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error maps the machine code onto an HTTP status and writes the error
// envelope. Unclassified errors become opaque 500s so internals never leak.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError && errorCollector != nil {
		errorCollector.IncErrors()
	}

	body := errorBody{Code: code, Message: "internal server error"}
	var appErr *common.Error
	if errors.As(err, &appErr) && code != common.CodeInternal {
		body.Message = appErr.Message
		body.Details = appErr.Details
	}
	JSON(w, status, errorEnvelope{Error: body})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodePrecondition, common.CodeInvalidState:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
