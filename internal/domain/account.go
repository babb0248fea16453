package domain

import (
	"fmt"
	"time"
)

type Account struct {
	ID             int64
	DocumentNumber int64
	CreatedAt      time.Time
}

func NewAccount(documentNumber int64, now time.Time) (*Account, error) {
	a := &Account{DocumentNumber: documentNumber, CreatedAt: now}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("NewAccount: %w", err)
	}
	return a, nil
}

func (a Account) Validate() error {
	if a.ID < 0 {
		return fmt.Errorf("account id %d: %w", a.ID, ErrInvalidAccountID)
	}
	if a.DocumentNumber <= 0 {
		return fmt.Errorf("document number %d: %w", a.DocumentNumber, ErrInvalidDocumentNumber)
	}
	return nil
}
