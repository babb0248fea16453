package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a transaction together with its outstanding balance. The
// transaction is fixed once built; only Balance moves, and only toward zero
// during settlement or when loaded back from storage.
type LedgerEntry struct {
	Transaction Transaction
	Balance     decimal.Decimal
}

// NewLedgerEntry builds an unpersisted entry from raw input. The amount is
// rounded and signed by operation type, and the opening balance equals it.
func NewLedgerEntry(accountID int64, op OperationType, amount decimal.Decimal, eventDate time.Time) (*LedgerEntry, error) {
	signed := NormalizeAmount(op, amount)
	tx := Transaction{
		AccountID:     accountID,
		OperationType: op,
		Amount:        signed,
		EventDate:     eventDate,
	}
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("NewLedgerEntry: %w", err)
	}
	return &LedgerEntry{Transaction: tx, Balance: signed}, nil
}

// RestoreLedgerEntry rehydrates a stored entry, which must carry its ID.
func RestoreLedgerEntry(tx Transaction, balance decimal.Decimal) (*LedgerEntry, error) {
	if !tx.IsPersisted() {
		return nil, fmt.Errorf("RestoreLedgerEntry: transaction id %d: %w", tx.ID, ErrInvalidTransactionID)
	}
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("RestoreLedgerEntry: %w", err)
	}
	return &LedgerEntry{Transaction: tx, Balance: balance}, nil
}

func (e *LedgerEntry) IsSettled() bool {
	return e.Balance.IsZero()
}

func (e *LedgerEntry) IsPayment() bool {
	return e.Transaction.OperationType == OperationPayment
}

// Apply adds amount to the balance and rounds the result.
func (e *LedgerEntry) Apply(amount decimal.Decimal) {
	e.Balance = RoundAmount(e.Balance.Add(amount))
}
