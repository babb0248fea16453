package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/service"
)

type recordCall struct {
	accountID int64
	code      int
	amount    decimal.Decimal
}

type fakeTransactionService struct {
	calls     []recordCall
	statement *service.Statement
	entry     *domain.LedgerEntry
	err       error
}

func (f *fakeTransactionService) GetTransaction(_ context.Context, id int64) (*domain.LedgerEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.entry == nil || f.entry.Transaction.ID != id {
		return nil, fmt.Errorf("GetTransaction: %w", domain.ErrTransactionNotFound)
	}
	return f.entry, nil
}

func (f *fakeTransactionService) RecordTransaction(_ context.Context, accountID int64, operationCode int, amount decimal.Decimal) (*domain.Transaction, error) {
	f.calls = append(f.calls, recordCall{accountID: accountID, code: operationCode, amount: amount})
	if f.err != nil {
		return nil, f.err
	}
	op := domain.OperationType(operationCode)
	return &domain.Transaction{
		ID:            7,
		AccountID:     accountID,
		OperationType: op,
		Amount:        domain.NormalizeAmount(op, amount),
		EventDate:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (f *fakeTransactionService) ListTransactions(_ context.Context, accountID int64, limit, offset int) (*service.Statement, error) {
	if f.err != nil {
		return nil, f.err
	}
	st := *f.statement
	st.Limit, st.Offset = limit, offset
	return &st, nil
}

func TestTransactionHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
		wantAmount string
	}{
		{
			name:       "cash purchase",
			body:       `{"account_id": 1, "operation_type_id": 1, "amount": 123.45}`,
			wantStatus: http.StatusCreated,
			wantAmount: "-123.45",
		},
		{
			name:       "payment with string amount",
			body:       `{"account_id": 1, "operation_type_id": 4, "amount": "60"}`,
			wantStatus: http.StatusCreated,
			wantAmount: "60.00",
		},
		{
			name:       "zero amount allowed",
			body:       `{"account_id": 1, "operation_type_id": 3, "amount": 0}`,
			wantStatus: http.StatusCreated,
			wantAmount: "0.00",
		},
		{
			name:       "largest storable amount",
			body:       `{"account_id": 1, "operation_type_id": 4, "amount": 9999999999999.99}`,
			wantStatus: http.StatusCreated,
			wantAmount: "9999999999999.99",
		},
		{name: "amount beyond storable range", body: `{"account_id": 1, "operation_type_id": 1, "amount": 10000000000000}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "huge amount", body: `{"account_id": 1, "operation_type_id": 1, "amount": 1e20}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "malformed body", body: `not-json`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "missing amount", body: `{"account_id": 1, "operation_type_id": 1}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "negative amount", body: `{"account_id": 1, "operation_type_id": 1, "amount": -5}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "unknown operation", body: `{"account_id": 1, "operation_type_id": 5, "amount": 5}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "zero account", body: `{"account_id": 0, "operation_type_id": 1, "amount": 5}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{
			name:       "account does not exist",
			body:       `{"account_id": 99, "operation_type_id": 1, "amount": 5}`,
			svcErr:     fmt.Errorf("RecordTransaction: %w", domain.ErrAccountDoesNotExist),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "ACCOUNT_DOES_NOT_EXIST",
		},
		{
			name:       "persistence failure",
			body:       `{"account_id": 1, "operation_type_id": 4, "amount": 5}`,
			svcErr:     fmt.Errorf("RecordTransaction: %w", domain.ErrPersistence),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeTransactionService{err: tc.svcErr}
			h := NewTransactionHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			h.Create(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			resp := decodeResponse(t, rr)
			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				return
			}

			require.True(t, resp.Success)
			require.Len(t, svc.calls, 1)
			data := resp.Data.(map[string]any)
			assert.EqualValues(t, 7, data["transaction_id"])
			assert.EqualValues(t, 1, data["account_id"])
			assert.Equal(t, "2026-01-02T03:04:05Z", data["event_date"])
			assert.Contains(t, rr.Body.String(), `"amount":`+tc.wantAmount)
		})
	}
}

func TestTransactionHandler_CreateValidatesBeforeService(t *testing.T) {
	svc := &fakeTransactionService{}
	h := NewTransactionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"account_id": -1, "operation_type_id": 9}`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.calls)

	resp := decodeResponse(t, rr)
	details := resp.Error.Details.([]any)
	assert.Len(t, details, 3)
}

func TestTransactionHandler_ListByAccount(t *testing.T) {
	entry, err := domain.RestoreLedgerEntry(domain.Transaction{
		ID:            5,
		AccountID:     1,
		OperationType: domain.OperationWithdrawal,
		Amount:        decimal.RequireFromString("-18.70"),
		EventDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}, decimal.RequireFromString("-3.2"))
	require.NoError(t, err)

	svc := &fakeTransactionService{statement: &service.Statement{Entries: []*domain.LedgerEntry{entry}, Total: 1}}
	h := NewTransactionHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/{accountId}/transactions", h.ListByAccount)

	req := httptest.NewRequest(http.MethodGet, "/accounts/1/transactions?limit=10&offset=0", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"balance":-3.20`)
	assert.Contains(t, body, `"amount":-18.70`)
	assert.Contains(t, body, `"operation_type":"WITHDRAWAL"`)
	assert.Contains(t, body, `"settled":false`)
	assert.Contains(t, body, `"limit":10`)
	assert.Contains(t, body, `"total":1`)
}

func TestTransactionHandler_ListByAccountBadPage(t *testing.T) {
	h := NewTransactionHandler(&fakeTransactionService{statement: &service.Statement{}})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/{accountId}/transactions", h.ListByAccount)

	for _, query := range []string{"limit=0", "limit=101", "limit=x", "offset=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/accounts/1/transactions?"+query, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}
}

func TestTransactionHandler_ListByAccountUnknown(t *testing.T) {
	h := NewTransactionHandler(&fakeTransactionService{err: fmt.Errorf("ListTransactions: %w", domain.ErrAccountNotFound)})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/{accountId}/transactions", h.ListByAccount)

	req := httptest.NewRequest(http.MethodGet, "/accounts/3/transactions", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTransactionHandler_Get(t *testing.T) {
	entry, err := domain.RestoreLedgerEntry(domain.Transaction{
		ID:            9,
		AccountID:     1,
		OperationType: domain.OperationPayment,
		Amount:        decimal.RequireFromString("60.00"),
		EventDate:     time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}, decimal.Zero)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "found", path: "/transactions/9", wantStatus: http.StatusOK},
		{name: "missing", path: "/transactions/10", wantStatus: http.StatusNotFound, wantCode: "TRANSACTION_NOT_FOUND"},
		{name: "non numeric id", path: "/transactions/abc", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "zero id", path: "/transactions/0", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewTransactionHandler(&fakeTransactionService{entry: entry})
			mux := http.NewServeMux()
			mux.HandleFunc("GET /transactions/{transactionId}", h.Get)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantCode != "" {
				resp := decodeResponse(t, rr)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				return
			}

			body := rr.Body.String()
			assert.Contains(t, body, `"transaction_id":9`)
			assert.Contains(t, body, `"amount":60.00`)
			assert.Contains(t, body, `"balance":0.00`)
			assert.Contains(t, body, `"operation_type":"PAYMENT"`)
			assert.Contains(t, body, `"settled":true`)
		})
	}
}
