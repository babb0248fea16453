package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/logging"
)

type AccountService struct {
	accounts accountRepository
	now      func() time.Time
}

func NewAccountService(accounts accountRepository) *AccountService {
	return &AccountService{accounts: accounts, now: time.Now}
}

func (s *AccountService) CreateAccount(ctx context.Context, documentNumber int64) (*domain.Account, error) {
	account, err := domain.NewAccount(documentNumber, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	logging.FromContext(ctx).Info("account created",
		"account_id", account.ID,
		"document_number", account.DocumentNumber,
	)

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("GetAccount: %w", domain.ErrInvalidAccountID)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetAccount: account %d: %w", accountID, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return account, nil
}
