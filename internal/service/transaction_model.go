package service

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

type TransactionType int8

const (
	TransactionTypeIncome TransactionType = iota
	TransactionTypeExpense
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeIncome:
		return "income"
	case TransactionTypeExpense:
		return "expense"
	default:
		return fmt.Sprintf("TransactionType(%d)", int8(t))
	}
}

// ParseTransactionType accepts only the exact lowercase names.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func (t TransactionType) toStorage() sqlconfig.TransactionType {
	if t == TransactionTypeExpense {
		return sqlconfig.TransactionTypeExpense
	}
	return sqlconfig.TransactionTypeIncome
}

// Transaction represents a transaction in the service layer. Amount is the
// stored magnitude; use SignedAmount for display.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        TransactionType
	Category    string
	UserID      uuid.UUID
}

// SignedAmount is negative for expenses and positive for income.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func transactionFromStorage(row *transaction.Transaction) (Transaction, error) {
	txType, err := ParseTransactionType(string(row.Type))
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          row.ID,
		Description: row.Description,
		Amount:      row.Amount,
		Date:        row.Date.UTC(),
		Type:        txType,
		Category:    row.CategoryName,
		UserID:      row.UserID,
	}, nil
}

// TransactionInput is an unvalidated ingestion request holding the decoded
// JSON values. A nil field means the field was absent. Amount may be a number
// or a numeric string; the other fields must be strings.
type TransactionInput struct {
	Description any
	Amount      any
	Type        any
	Category    any
	Date        any
}

// TransactionCursor identifies a position in a paginated listing and carries
// the limit and creation-time bound so later pages stay consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}
