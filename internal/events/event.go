package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
)

const TypeTransactionRecorded = "transaction.recorded"

type TransactionRecorded struct {
	EventID     uuid.UUID       `json:"event_id"`
	EventType   string          `json:"event_type"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Transaction TransactionData `json:"transaction"`
	Balance     decimal.Decimal `json:"balance"`
	Settled     []SettledDebit  `json:"settled_debits,omitempty"`
}

type TransactionData struct {
	ID              int64           `json:"transaction_id"`
	AccountID       int64           `json:"account_id"`
	OperationTypeID int             `json:"operation_type_id"`
	Amount          decimal.Decimal `json:"amount"`
	EventDate       time.Time       `json:"event_date"`
}

// SettledDebit is a debit whose balance moved while discharging a payment.
type SettledDebit struct {
	TransactionID int64           `json:"transaction_id"`
	Applied       decimal.Decimal `json:"applied"`
	Balance       decimal.Decimal `json:"balance"`
}

func NewTransactionRecorded(entry *domain.LedgerEntry, settled []SettledDebit, now time.Time) TransactionRecorded {
	tx := entry.Transaction
	return TransactionRecorded{
		EventID:    uuid.New(),
		EventType:  TypeTransactionRecorded,
		OccurredAt: now,
		Transaction: TransactionData{
			ID:              tx.ID,
			AccountID:       tx.AccountID,
			OperationTypeID: tx.OperationType.Code(),
			Amount:          tx.Amount,
			EventDate:       tx.EventDate,
		},
		Balance: entry.Balance,
		Settled: settled,
	}
}
