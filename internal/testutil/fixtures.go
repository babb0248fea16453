package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

func SeedAccount(t *testing.T, db *sql.DB, documentNumber int64) *domain.Account {
	t.Helper()

	a := &domain.Account{
		DocumentNumber: documentNumber,
		CreatedAt:      time.Now().UTC(),
	}
	err := db.QueryRow(
		`INSERT INTO accounts (document_number, created_at) VALUES ($1, $2) RETURNING id`,
		a.DocumentNumber, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		t.Fatalf("seed account %d: %v", documentNumber, err)
	}
	return a
}

// SeedTransaction inserts an entry whose balance equals its signed amount.
// amount is unsigned; the operation type decides the sign.
func SeedTransaction(t *testing.T, db *sql.DB, accountID int64, op domain.OperationType, amount string, eventDate time.Time) *domain.LedgerEntry {
	t.Helper()

	e, err := domain.NewLedgerEntry(accountID, op, decimal.RequireFromString(amount), eventDate.UTC())
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}

	err = db.QueryRow(
		`INSERT INTO transactions (account_id, operation_type_id, amount, balance, event_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		accountID, op.Code(), e.Transaction.Amount, e.Balance, e.Transaction.EventDate,
	).Scan(&e.Transaction.ID)
	if err != nil {
		t.Fatalf("seed transaction for account %d: %v", accountID, err)
	}
	return e
}

func GetTransactionBalance(t *testing.T, db *sql.DB, transactionID int64) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM transactions WHERE id = $1`, transactionID).Scan(&balance)
	if err != nil {
		t.Fatalf("get transaction balance %d: %v", transactionID, err)
	}
	return balance
}

func CountTransactions(t *testing.T, db *sql.DB, accountID int64) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count transactions for account %d: %v", accountID, err)
	}
	return count
}
