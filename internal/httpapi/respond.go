package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var validation *reading.ValidationError
	switch {
	case errors.Is(err, accounts.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, quiz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, accounts.ErrUserExists), errors.Is(err, quiz.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, accounts.ErrInvalidEmail),
		errors.Is(err, accounts.ErrEmptyPassword),
		errors.Is(err, accounts.ErrPasswordTooLong):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case llm.IsGenerationFailure(err),
		errors.As(err, &validation),
		errors.Is(err, reading.ErrNoQuestions):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// fail writes err with its mapped status. Internal errors are logged and
// hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		s.logger.Error("request failed", requestFields(r, err)...)
		msg = "internal error"
	case status == http.StatusBadGateway:
		s.logger.Warn("content generation failed", requestFields(r, err)...)
		msg = "content generation failed, try again"
	case status == http.StatusGatewayTimeout:
		s.logger.Warn("content generation timed out", requestFields(r, err)...)
		msg = "content generation timed out, try again"
	case status == http.StatusUnauthorized:
		msg = accounts.ErrInvalidCredentials.Error()
	}
	writeError(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
