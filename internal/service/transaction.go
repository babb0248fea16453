package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/card-ledger/internal/domain"
	"github.com/josh-kwaku/card-ledger/internal/events"
	"github.com/josh-kwaku/card-ledger/internal/logging"
	"github.com/josh-kwaku/card-ledger/internal/service/settlement"
)

type TransactionService struct {
	accounts     accountRepository
	transactions transactionRepository
	txm          txManager
	publisher    eventPublisher
	now          func() time.Time
}

func NewTransactionService(
	accounts accountRepository,
	transactions transactionRepository,
	txm txManager,
	publisher eventPublisher,
) *TransactionService {
	return &TransactionService{
		accounts:     accounts,
		transactions: transactions,
		txm:          txm,
		publisher:    publisher,
		now:          time.Now,
	}
}

// RecordTransaction stores a new transaction for the account. A payment is
// then discharged against the account's open debits, oldest first, in the
// same database transaction.
func (s *TransactionService) RecordTransaction(ctx context.Context, accountID int64, operationCode int, amount decimal.Decimal) (*domain.Transaction, error) {
	op, err := domain.ParseOperationType(operationCode)
	if err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}
	if accountID <= 0 {
		return nil, fmt.Errorf("RecordTransaction: account id %d: %w", accountID, domain.ErrInvalidAccountID)
	}
	if amount.IsNegative() || !domain.AmountInRange(amount) {
		return nil, fmt.Errorf("RecordTransaction: amount %s: %w", amount, domain.ErrInvalidAmount)
	}

	ctx = logging.With(ctx, "account_id", accountID)

	entry, err := domain.NewLedgerEntry(accountID, op, amount, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}

	var settled []events.SettledDebit
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accounts.GetForUpdate(ctx, accountID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("lock account %d: %w", accountID, domain.ErrAccountDoesNotExist)
			}
			return fmt.Errorf("lock account %d: %w: %w", accountID, domain.ErrPersistence, err)
		}

		if err := s.transactions.Create(ctx, entry); err != nil {
			return err
		}

		if !entry.IsPayment() {
			return nil
		}

		settled, err = s.dischargePayment(ctx, entry)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}

	log := logging.FromContext(ctx)
	log.Info("transaction recorded",
		"transaction_id", entry.Transaction.ID,
		"operation_type", op.String(),
		"amount", entry.Transaction.Amount.StringFixed(domain.AmountScale),
		"balance", entry.Balance.StringFixed(domain.AmountScale),
		"settled_debits", len(settled),
	)

	event := events.NewTransactionRecorded(entry, settled, s.now().UTC())
	if err := s.publisher.PublishTransactionRecorded(ctx, event); err != nil {
		log.Warn("failed to publish transaction event",
			"transaction_id", entry.Transaction.ID,
			"event_id", event.EventID,
			"error", err,
		)
	}

	tx := entry.Transaction
	return &tx, nil
}

// dischargePayment settles open debits with the payment and persists every
// balance that moved: debits in discharge order, then the payment.
func (s *TransactionService) dischargePayment(ctx context.Context, payment *domain.LedgerEntry) ([]events.SettledDebit, error) {
	debits, err := s.transactions.GetOpenDebits(ctx, payment.Transaction.AccountID)
	if err != nil {
		return nil, fmt.Errorf("dischargePayment: %w", err)
	}
	if len(debits) == 0 {
		return nil, nil
	}

	before := make(map[*domain.LedgerEntry]decimal.Decimal, len(debits))
	for _, d := range debits {
		before[d] = d.Balance
	}
	paymentBefore := payment.Balance

	_, ordered, err := settlement.Discharge(payment, debits)
	if err != nil {
		return nil, fmt.Errorf("dischargePayment: %w", err)
	}

	var settled []events.SettledDebit
	for _, d := range ordered {
		if d.Balance.Equal(before[d]) {
			continue
		}
		if err := s.transactions.UpdateBalance(ctx, d); err != nil {
			return nil, fmt.Errorf("dischargePayment: debit %d: %w", d.Transaction.ID, err)
		}
		settled = append(settled, events.SettledDebit{
			TransactionID: d.Transaction.ID,
			Applied:       d.Balance.Sub(before[d]),
			Balance:       d.Balance,
		})
	}

	if !payment.Balance.Equal(paymentBefore) {
		if err := s.transactions.UpdateBalance(ctx, payment); err != nil {
			return nil, fmt.Errorf("dischargePayment: payment %d: %w", payment.Transaction.ID, err)
		}
	}

	logging.FromContext(ctx).Debug("payment discharged",
		"transaction_id", payment.Transaction.ID,
		"open_debits", len(debits),
		"settled_debits", len(settled),
		"remaining", payment.Balance.StringFixed(domain.AmountScale),
	)

	return settled, nil
}

// GetTransaction returns a stored transaction with its current balance.
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("GetTransaction: transaction id %d: %w", id, domain.ErrInvalidTransactionID)
	}

	entry, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetTransaction: transaction %d: %w", id, domain.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("GetTransaction: %w", err)
	}
	return entry, nil
}

type Statement struct {
	Entries []*domain.LedgerEntry
	Total   int
	Limit   int
	Offset  int
}

// ListTransactions returns a page of the account's transactions with their
// current balances, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID int64, limit, offset int) (*Statement, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("ListTransactions: %w", domain.ErrInvalidAccountID)
	}
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("ListTransactions: limit %d offset %d: %w", limit, offset, domain.ErrInvalidRequest)
	}

	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("ListTransactions: account %d: %w", accountID, domain.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}

	entries, total, err := s.transactions.GetByAccountID(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}

	return &Statement{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}
