package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Transaction represents a transaction record. Amount is always a magnitude;
// CategoryName is filled only by reads that join categories.
type Transaction struct {
	ID           uuid.UUID                 `db:"id"`
	Description  string                    `db:"description"`
	Amount       decimal.Decimal           `db:"amount"`
	Date         time.Time                 `db:"date"`
	Type         sqlconfig.TransactionType `db:"type"`
	UserID       uuid.UUID                 `db:"user_id"`
	CategoryID   uuid.UUID                 `db:"category_id"`
	CategoryName string                    `db:"category_name"`
	CreatedAt    time.Time                 `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        sqlconfig.TransactionType
	Date        time.Time // defaults to now if zero
}

// DateRange is the half-open interval [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// MonthRange returns the UTC calendar month containing t.
func MonthRange(t time.Time) DateRange {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

// PeriodTotals holds summed magnitudes per type; both are zero when nothing matched.
type PeriodTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryTotal is one row of an expense breakdown.
type CategoryTotal struct {
	Name  string          `db:"name"`
	Value decimal.Decimal `db:"value"`
}

// TransactionFilter selects one user's transactions for listing.
// MaxCreationTime pins the result set so later pages do not shift when new
// rows arrive.
type TransactionFilter struct {
	UserID          uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

type ITransactionReader interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	TotalsForPeriod(ctx context.Context, userID uuid.UUID, period DateRange) (*PeriodTotals, error)
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, period DateRange) ([]*CategoryTotal, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error)
}

type ITransactionWriter interface {
	ITransactionReader
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
}
