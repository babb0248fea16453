package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

const transactionColumns = `id, account_id, operation_type_id, amount, balance, event_date`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts the entry and sets its generated transaction ID. The event
// date is replaced with the stored value, which has microsecond precision.
func (r *TransactionRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	tx := &entry.Transaction
	var eventDate time.Time
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO transactions (account_id, operation_type_id, amount, balance, event_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, event_date`,
		tx.AccountID, tx.OperationType.Code(), tx.Amount, entry.Balance, tx.EventDate,
	).Scan(&tx.ID, &eventDate)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("Create: account %d: %w", tx.AccountID, domain.ErrAccountDoesNotExist)
		}
		return fmt.Errorf("Create: %w: %w", domain.ErrPersistence, err)
	}
	tx.EventDate = eventDate.UTC()
	return nil
}

// GetOpenDebits returns the account's unsettled non-payment entries, oldest first.
func (r *TransactionRepository) GetOpenDebits(ctx context.Context, accountID int64) ([]*domain.LedgerEntry, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 AND operation_type_id <> $2 AND balance <> 0
		ORDER BY event_date, id`,
		accountID, domain.OperationPayment.Code(),
	)
	if err != nil {
		return nil, fmt.Errorf("GetOpenDebits: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	entries := []*domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("GetOpenDebits: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetOpenDebits: rows: %w: %w", domain.ErrPersistence, err)
	}
	return entries, nil
}

// UpdateBalance persists the entry's current balance. Amount and identity are
// never rewritten.
func (r *TransactionRepository) UpdateBalance(ctx context.Context, entry *domain.LedgerEntry) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE transactions SET balance = $1 WHERE id = $2`,
		entry.Balance, entry.Transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBalance: %w: %w", domain.ErrPersistence, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateBalance: rows affected: %w: %w", domain.ErrPersistence, err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateBalance: transaction %d: %w", entry.Transaction.ID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns ErrNotFound when no transaction has the id.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	)
	e, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return e, nil
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, int, error) {
	q := conn(ctx, r.db)

	var total int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: count: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1 ORDER BY event_date DESC, id DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: %w", err)
	}
	defer rows.Close()

	entries := []*domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("GetByAccountID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("GetByAccountID: rows: %w", err)
	}
	return entries, total, nil
}

func scanLedgerEntry(s scanner) (*domain.LedgerEntry, error) {
	var (
		tx      domain.Transaction
		op      int
		balance decimal.Decimal
	)
	if err := s.Scan(&tx.ID, &tx.AccountID, &op, &tx.Amount, &balance, &tx.EventDate); err != nil {
		return nil, err
	}
	opType, err := domain.ParseOperationType(op)
	if err != nil {
		return nil, err
	}
	tx.OperationType = opType
	tx.EventDate = tx.EventDate.UTC()
	return domain.RestoreLedgerEntry(tx, balance)
}
