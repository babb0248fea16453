package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/service"
)

type transactionService interface {
	RecordTransaction(ctx context.Context, accountID int64, operationCode int, amount decimal.Decimal) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*domain.LedgerEntry, error)
	ListTransactions(ctx context.Context, accountID int64, limit, offset int) (*service.Statement, error)
}

type TransactionHandler struct {
	transactions transactionService
}

func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionRequest struct {
	AccountID       *int64           `json:"account_id"`
	OperationTypeID *int             `json:"operation_type_id"`
	Amount          *decimal.Decimal `json:"amount"`
}

func (r createTransactionRequest) Validate() []FieldError {
	var errs []FieldError

	if r.AccountID == nil {
		errs = append(errs, FieldError{Field: "account_id", Message: "required"})
	} else if *r.AccountID <= 0 {
		errs = append(errs, FieldError{Field: "account_id", Message: "must be a positive integer"})
	}

	if r.OperationTypeID == nil {
		errs = append(errs, FieldError{Field: "operation_type_id", Message: "required"})
	} else if !domain.OperationType(*r.OperationTypeID).IsValid() {
		errs = append(errs, FieldError{Field: "operation_type_id", Message: "must be one of 1, 2, 3, 4"})
	}

	if r.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	} else if r.Amount.IsNegative() || !domain.AmountInRange(*r.Amount) {
		errs = append(errs, FieldError{Field: "amount", Message: "must be between 0 and 9999999999999.99"})
	}

	return errs
}

type transactionDTO struct {
	TransactionID   int64       `json:"transaction_id"`
	AccountID       int64       `json:"account_id"`
	OperationTypeID int         `json:"operation_type_id"`
	Amount          json.Number `json:"amount"`
	EventDate       time.Time   `json:"event_date"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		TransactionID:   t.ID,
		AccountID:       t.AccountID,
		OperationTypeID: t.OperationType.Code(),
		Amount:          formatAmount(t.Amount),
		EventDate:       t.EventDate,
	}
}

type statementEntryDTO struct {
	transactionDTO
	OperationType string      `json:"operation_type"`
	Balance       json.Number `json:"balance"`
	Settled       bool        `json:"settled"`
}

func toStatementEntryDTO(e *domain.LedgerEntry) statementEntryDTO {
	return statementEntryDTO{
		transactionDTO: toTransactionDTO(&e.Transaction),
		OperationType:  e.Transaction.OperationType.String(),
		Balance:        formatAmount(e.Balance),
		Settled:        e.IsSettled(),
	}
}

type paginationDTO struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type statementDTO struct {
	AccountID    int64               `json:"account_id"`
	Transactions []statementEntryDTO `json:"transactions"`
	Pagination   paginationDTO       `json:"pagination"`
}

func formatAmount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(domain.AmountScale))
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	tx, err := h.transactions.RecordTransaction(r.Context(), *req.AccountID, *req.OperationTypeID, *req.Amount)
	if err != nil {
		RespondServiceError(w, r, "failed to record transaction", err,
			"account_id", *req.AccountID,
			"operation_type_id", *req.OperationTypeID,
		)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(tx))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, fieldErr := transactionIDFromPath(r)
	if fieldErr != nil {
		RespondValidationError(w, []FieldError{*fieldErr})
		return
	}

	entry, err := h.transactions.GetTransaction(r.Context(), id)
	if err != nil {
		RespondServiceError(w, r, "failed to get transaction", err, "transaction_id", id)
		return
	}

	RespondSuccess(w, http.StatusOK, toStatementEntryDTO(entry))
}

func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, fieldErr := accountIDFromPath(r)
	if fieldErr != nil {
		RespondValidationError(w, []FieldError{*fieldErr})
		return
	}

	limit, offset, errs := pageFromQuery(r)
	if len(errs) > 0 {
		RespondValidationError(w, errs)
		return
	}

	st, err := h.transactions.ListTransactions(r.Context(), accountID, limit, offset)
	if err != nil {
		RespondServiceError(w, r, "failed to list transactions", err, "account_id", accountID)
		return
	}

	entries := make([]statementEntryDTO, len(st.Entries))
	for i, e := range st.Entries {
		entries[i] = toStatementEntryDTO(e)
	}

	RespondSuccess(w, http.StatusOK, statementDTO{
		AccountID:    accountID,
		Transactions: entries,
		Pagination:   paginationDTO{Limit: st.Limit, Offset: st.Offset, Total: st.Total},
	})
}
