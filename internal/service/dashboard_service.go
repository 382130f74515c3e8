package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

const recentTransactionLimit = 10

var hundred = decimal.NewFromInt(100)

type dashboardReader interface {
	TotalsForPeriod(ctx context.Context, userID uuid.UUID, period transaction.DateRange) (*transaction.PeriodTotals, error)
	ExpensesByCategory(ctx context.Context, userID uuid.UUID, period transaction.DateRange) ([]*transaction.CategoryTotal, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error)
}

// DashboardService computes per-user statistics. Nothing is cached.
type DashboardService struct {
	reader dashboardReader
}

func NewDashboardService(reader dashboardReader) *DashboardService {
	return &DashboardService{reader: reader}
}

// GetDashboard aggregates the calendar month containing now against the
// month before it.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*Dashboard, error) {
	thisMonth, lastMonth := monthPeriods(now)

	current, err := s.reader.TotalsForPeriod(ctx, userID, thisMonth)
	if err != nil {
		return nil, err
	}
	previous, err := s.reader.TotalsForPeriod(ctx, userID, lastMonth)
	if err != nil {
		return nil, err
	}

	balance := current.Income.Sub(current.Expense)
	previousBalance := previous.Income.Sub(previous.Expense)

	stats := DashboardStats{
		TotalBalance:  balance,
		TotalIncome:   current.Income,
		TotalExpenses: current.Expense,
		SavingsRate:   savingsRate(balance, current.Income),
		BalanceChange: percentChange(balance, previousBalance),
		IncomeChange:  percentChange(current.Income, previous.Income),
		ExpenseChange: percentChange(current.Expense, previous.Expense),
	}

	categoryTotals, err := s.reader.ExpensesByCategory(ctx, userID, thisMonth)
	if err != nil {
		return nil, err
	}
	breakdown := make([]CategoryAmount, 0, len(categoryTotals))
	for _, total := range categoryTotals {
		breakdown = append(breakdown, CategoryAmount{Name: total.Name, Value: total.Value})
	}

	rows, err := s.reader.ListRecent(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	recent := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := transactionFromStorage(row)
		if err != nil {
			return nil, err
		}
		recent = append(recent, tx)
	}

	return &Dashboard{
		Stats:              stats,
		ExpenseBreakdown:   breakdown,
		RecentTransactions: recent,
	}, nil
}

// monthPeriods returns the UTC month of now and the month before it. The
// previous month is found by stepping back day-of-month days, which always
// lands on the last day of the preceding month.
func monthPeriods(now time.Time) (transaction.DateRange, transaction.DateRange) {
	now = now.UTC()
	lastMonthRef := now.AddDate(0, 0, -now.Day())
	return transaction.MonthRange(now), transaction.MonthRange(lastMonthRef)
}

// savingsRate is 0 when income is 0. Negative income is divided as is.
func savingsRate(balance, income decimal.Decimal) float64 {
	if income.IsZero() {
		return 0
	}
	return balance.Div(income).Mul(hundred).InexactFloat64()
}

// percentChange returns 100 for growth from zero and 0 when both are zero or
// the current value is negative against a zero baseline.
func percentChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}
