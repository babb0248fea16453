package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountDoesNotExist     = errors.New("account does not exist")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrDuplicateDocumentNumber = errors.New("document number already registered")
	ErrInvalidAccountID        = errors.New("invalid account id")
	ErrInvalidDocumentNumber   = errors.New("invalid document number")
	ErrInvalidTransactionID    = errors.New("invalid transaction id")
	ErrInvalidOperationType    = errors.New("invalid operation type")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidDischarge        = errors.New("invalid discharge operation")
	ErrPersistence             = errors.New("persistence failure")
	ErrInvalidRequest          = errors.New("invalid request")
)
