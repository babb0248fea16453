package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/logging"
)

func TestAppErrorFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrInvalidOperationType, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidAccountID, http.StatusBadRequest},
		{domain.ErrInvalidDocumentNumber, http.StatusBadRequest},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransactionID, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrDuplicateDocumentNumber, http.StatusConflict},
		{domain.ErrAccountDoesNotExist, http.StatusUnprocessableEntity},
		{domain.ErrPersistence, http.StatusInternalServerError},
		{domain.ErrInvalidDischarge, http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("Op: inner: %w", tc.err)
			assert.Equal(t, tc.wantStatus, appErrorFor(wrapped).Status)
		})
	}
}

func TestRespondServiceError_LogLevel(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantLevel  string
	}{
		{"client error", domain.ErrAccountDoesNotExist, http.StatusUnprocessableEntity, "WARN"},
		{"validation error", domain.ErrInvalidAmount, http.StatusBadRequest, "WARN"},
		{"not found", domain.ErrAccountNotFound, http.StatusNotFound, "WARN"},
		{"storage failure", domain.ErrPersistence, http.StatusInternalServerError, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var defaultBuf bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(logging.New(&defaultBuf, "test", "debug", "production"))
			t.Cleanup(func() { slog.SetDefault(prev) })

			var buf bytes.Buffer
			req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
			req = req.WithContext(logging.WithLogger(req.Context(), logging.New(&buf, "test", "debug", "production")))
			rr := httptest.NewRecorder()

			RespondServiceError(rr, req, "failed to record transaction", fmt.Errorf("Op: %w", tc.err), "account_id", 7)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "failed to record transaction", entry["msg"])
			assert.EqualValues(t, 7, entry["account_id"])
			assert.Contains(t, entry["error"], tc.err.Error())

			assert.NotContains(t, defaultBuf.String(), "unhandled domain error")
		})
	}
}
