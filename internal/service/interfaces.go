package service

import (
	"context"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/events"
)

type accountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	GetForUpdate(ctx context.Context, id int64) (*domain.Account, error)
}

type transactionRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetOpenDebits(ctx context.Context, accountID int64) ([]*domain.LedgerEntry, error)
	UpdateBalance(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error)
	GetByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, int, error)
}

type txManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, event events.TransactionRecorded) error
}
