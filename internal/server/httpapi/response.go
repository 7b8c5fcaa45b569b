package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minhtran/taskkeeper/internal/common"
)

const contentTypeJSON = "application/json; charset=utf-8"

func respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the cause stays in the logs.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, common.ErrorInvalidOTP):
		respondError(w, http.StatusBadRequest, "invalid or expired code")
	case errors.Is(err, common.ErrorOTPExpired):
		respondError(w, http.StatusBadRequest, "code expired")
	case errors.Is(err, common.ErrorInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrorNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		respondError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrorMailDelivery):
		respondError(w, http.StatusBadGateway, "could not send email")
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
