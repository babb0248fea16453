package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

const accountColumns = `id, document_number, created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

// Create inserts the account and sets its generated ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO accounts (document_number, created_at) VALUES ($1, $2) RETURNING id`,
		account.DocumentNumber, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return fmt.Errorf("Create: %w", domain.ErrDuplicateDocumentNumber)
		}
		return fmt.Errorf("Create: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// GetForUpdate locks the account row until the surrounding transaction ends.
// It must be called with a context obtained from TxManager.WithinTx.
func (r *AccountRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	tx, ok := txFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("GetForUpdate: no transaction in context")
	}
	row := tx.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return a, nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	if err := s.Scan(&a.ID, &a.DocumentNumber, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
