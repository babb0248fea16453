package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept on amounts and balances.
const AmountScale int32 = 2

// MaxAmount is the largest magnitude a NUMERIC(15,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

type Transaction struct {
	ID            int64
	AccountID     int64
	OperationType OperationType
	Amount        decimal.Decimal
	EventDate     time.Time
}

// Validate checks the invariants shared by new and rehydrated transactions.
// An ID of zero means the transaction has not been persisted yet.
func (t Transaction) Validate() error {
	if t.ID < 0 {
		return fmt.Errorf("transaction id %d: %w", t.ID, ErrInvalidTransactionID)
	}
	if t.AccountID <= 0 {
		return fmt.Errorf("account id %d: %w", t.AccountID, ErrInvalidAccountID)
	}
	if !t.OperationType.IsValid() {
		return fmt.Errorf("operation type %d: %w", int(t.OperationType), ErrInvalidOperationType)
	}
	if !AmountInRange(t.Amount) {
		return fmt.Errorf("amount %s: %w", t.Amount, ErrInvalidAmount)
	}
	return nil
}

func (t Transaction) IsPersisted() bool {
	return t.ID > 0
}

// AmountInRange reports whether the rounded magnitude fits in MaxAmount.
func AmountInRange(d decimal.Decimal) bool {
	return RoundAmount(d).Abs().LessThanOrEqual(MaxAmount)
}

// RoundAmount rounds half away from zero to AmountScale digits.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// NormalizeAmount rounds the amount once and then flips its sign only when it
// disagrees with the operation's polarity, so already-signed input is left as is.
func NormalizeAmount(op OperationType, amount decimal.Decimal) decimal.Decimal {
	rounded := RoundAmount(amount)
	if op.IsDebit() {
		if rounded.IsPositive() {
			return rounded.Neg()
		}
		return rounded
	}
	if rounded.IsNegative() {
		return rounded.Neg()
	}
	return rounded
}
