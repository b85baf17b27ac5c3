package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON error envelope the gateway returns to callers.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithJSON for successful cases.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError maps an AppError (or any error) onto the JSON error envelope.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := ErrCodeInternal
	message := "An unexpected error occurred"

	var appErr *AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		code = appErr.Code
		message = appErr.Message
	}

	Logger.WithFields(logrus.Fields{
		"status": status,
		"code":   code,
		"error":  err.Error(),
	}).Error(message)

	RespondWithJSON(w, status, ErrorResponse{Code: code, Message: message})
}
