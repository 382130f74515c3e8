package service

import (
	"github.com/shopspring/decimal"
)

// DashboardStats holds this month's totals and the change against last month.
// Percentages are plain numbers, so 25 means 25%.
type DashboardStats struct {
	TotalBalance  decimal.Decimal
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	SavingsRate   float64
	BalanceChange float64
	IncomeChange  float64
	ExpenseChange float64
}

type CategoryAmount struct {
	Name  string
	Value decimal.Decimal
}

type Dashboard struct {
	Stats              DashboardStats
	ExpenseBreakdown   []CategoryAmount
	RecentTransactions []Transaction
}
