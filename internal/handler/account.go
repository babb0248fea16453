package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

type accountService interface {
	CreateAccount(ctx context.Context, documentNumber int64) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	DocumentNumber *int64 `json:"document_number"`
}

func (r createAccountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.DocumentNumber == nil {
		errs = append(errs, FieldError{Field: "document_number", Message: "required"})
	} else if *r.DocumentNumber <= 0 {
		errs = append(errs, FieldError{Field: "document_number", Message: "must be a positive integer"})
	}
	return errs
}

type accountDTO struct {
	AccountID      int64     `json:"account_id"`
	DocumentNumber int64     `json:"document_number"`
	CreatedAt      time.Time `json:"created_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		AccountID:      a.ID,
		DocumentNumber: a.DocumentNumber,
		CreatedAt:      a.CreatedAt,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), *req.DocumentNumber)
	if err != nil {
		RespondServiceError(w, r, "failed to create account", err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, fieldErr := accountIDFromPath(r)
	if fieldErr != nil {
		RespondValidationError(w, []FieldError{*fieldErr})
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		RespondServiceError(w, r, "failed to get account", err, "account_id", accountID)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}
