package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken     = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken     = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrAccountNotFound      = &AppError{http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrDuplicateDocument    = &AppError{http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", "An account with this document number already exists"}
	ErrAccountDoesNotExist  = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_DOES_NOT_EXIST", "Account referenced by the transaction does not exist"}
	ErrInvalidOperationType = &AppError{http.StatusBadRequest, "INVALID_OPERATION_TYPE", "Operation type must be one of 1, 2, 3, 4"}
	ErrInvalidAmount        = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be between 0 and 9999999999999.99"}
	ErrInvalidAccountID     = &AppError{http.StatusBadRequest, "INVALID_ACCOUNT_ID", "Account id must be a positive integer"}
	ErrInvalidDocument      = &AppError{http.StatusBadRequest, "INVALID_DOCUMENT_NUMBER", "Document number must be a positive integer"}
	ErrTransactionNotFound  = &AppError{http.StatusNotFound, "TRANSACTION_NOT_FOUND", "Transaction not found"}
	ErrInvalidTransactionID = &AppError{http.StatusBadRequest, "INVALID_TRANSACTION_ID", "Transaction id must be a positive integer"}

	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
	ErrIdempotencyInProgress = &AppError{http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "A request with this idempotency key is still being processed"}
)
