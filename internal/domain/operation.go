package domain

import "fmt"

type OperationType int

const (
	OperationCashPurchase        OperationType = 1
	OperationInstallmentPurchase OperationType = 2
	OperationWithdrawal          OperationType = 3
	OperationPayment             OperationType = 4
)

func ParseOperationType(code int) (OperationType, error) {
	op := OperationType(code)
	if !op.IsValid() {
		return 0, fmt.Errorf("ParseOperationType: code %d: %w", code, ErrInvalidOperationType)
	}
	return op, nil
}

func (o OperationType) IsValid() bool {
	switch o {
	case OperationCashPurchase, OperationInstallmentPurchase, OperationWithdrawal, OperationPayment:
		return true
	default:
		return false
	}
}

// IsDebit reports whether the operation produces a negative signed amount.
func (o OperationType) IsDebit() bool {
	switch o {
	case OperationCashPurchase, OperationInstallmentPurchase, OperationWithdrawal:
		return true
	default:
		return false
	}
}

func (o OperationType) Code() int {
	return int(o)
}

func (o OperationType) String() string {
	switch o {
	case OperationCashPurchase:
		return "CASH_PURCHASE"
	case OperationInstallmentPurchase:
		return "INSTALLMENT_PURCHASE"
	case OperationWithdrawal:
		return "WITHDRAWAL"
	case OperationPayment:
		return "PAYMENT"
	default:
		return fmt.Sprintf("OperationType(%d)", int(o))
	}
}
