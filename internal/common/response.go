package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the response wrapper shared by the dashboard and the upstream
// ERP: errCode 200 means success, anything else carries msg for display.
type Envelope struct {
	ErrCode int    `json:"errCode"`
	Data    any    `json:"data,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data renders a successful envelope around the payload.
func Data(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, Envelope{ErrCode: 200, Data: v})
}

// Fail renders an error envelope with the given HTTP status and errCode.
func Fail(w http.ResponseWriter, status, errCode int, msg string) {
	if errCode == 0 {
		errCode = status
	}
	JSON(w, status, Envelope{ErrCode: errCode, Msg: msg})
}

// WriteError renders an error using the canonical envelope shape. AppError
// values keep their HTTP status and errCode; anything else becomes a generic
// internal failure.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = "internal error"
		}
		Fail(w, status, appErr.ErrCode, msg)
		return
	}
	Fail(w, http.StatusInternalServerError, 500, "internal error")
}
