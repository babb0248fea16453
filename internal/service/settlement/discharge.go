package settlement

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

// Discharge applies the payment's balance to the debits, oldest event date
// first, until either the payment is exhausted or every debit is settled.
//
// Entries are updated in place. The returned slice holds the same pointers as
// debits in the order they were processed; the input slice is not reordered.
// Payments and settled entries found among debits are left untouched.
func Discharge(payment *domain.LedgerEntry, debits []*domain.LedgerEntry) (*domain.LedgerEntry, []*domain.LedgerEntry, error) {
	if payment == nil || !payment.IsPayment() {
		return nil, nil, fmt.Errorf("Discharge: %w", domain.ErrInvalidDischarge)
	}
	if len(debits) == 0 {
		return payment, []*domain.LedgerEntry{}, nil
	}

	ordered := sortByEventDate(debits)

	for _, debit := range ordered {
		if !payment.Balance.IsPositive() {
			break
		}
		if debit == nil || debit.IsPayment() || debit.IsSettled() {
			continue
		}

		applied := decimal.Min(payment.Balance, debit.Balance.Neg())
		if !applied.IsPositive() {
			continue
		}

		debit.Apply(applied)
		payment.Apply(applied.Neg())
	}

	return payment, ordered, nil
}

func sortByEventDate(debits []*domain.LedgerEntry) []*domain.LedgerEntry {
	ordered := make([]*domain.LedgerEntry, len(debits))
	copy(ordered, debits)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		ai, bi := a.Transaction.EventDate, b.Transaction.EventDate
		switch {
		case ai.IsZero():
			return false
		case bi.IsZero():
			return true
		default:
			return ai.Before(bi)
		}
	})
	return ordered
}
