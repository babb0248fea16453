package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/logging"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

// RespondServiceError maps a service error to its response and logs it,
// at Warn for client errors and Error for server errors.
func RespondServiceError(w http.ResponseWriter, r *http.Request, msg string, err error, attrs ...any) {
	appErr := appErrorFor(err)
	level := slog.LevelWarn
	if appErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, msg, append(attrs, "error", err)...)
	RespondAppError(w, appErr, nil)
}

func appErrorFor(err error) *AppError {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return ErrTransactionNotFound
	case errors.Is(err, domain.ErrAccountDoesNotExist):
		return ErrAccountDoesNotExist
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return ErrDuplicateDocument
	case errors.Is(err, domain.ErrNotFound):
		return ErrResourceNotFound
	case errors.Is(err, domain.ErrInvalidOperationType):
		return ErrInvalidOperationType
	case errors.Is(err, domain.ErrInvalidAmount):
		return ErrInvalidAmount
	case errors.Is(err, domain.ErrInvalidAccountID):
		return ErrInvalidAccountID
	case errors.Is(err, domain.ErrInvalidTransactionID):
		return ErrInvalidTransactionID
	case errors.Is(err, domain.ErrInvalidDocumentNumber):
		return ErrInvalidDocument
	case errors.Is(err, domain.ErrInvalidRequest):
		return ErrInvalidRequest
	case errors.Is(err, domain.ErrPersistence):
		return ErrInternalError
	default:
		slog.Error("unhandled domain error", "error", err)
		return ErrInternalError
	}
}
