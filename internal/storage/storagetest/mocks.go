// Package storagetest provides testify mocks of the storage writers.
package storagetest

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
	"github.com/carson-networks/finance-tracker/internal/storage/user"
)

// Mocks bundles the mocks behind a Writer built by NewWriter.
type Mocks struct {
	Tx           *MockTx
	Users        *MockUserWriter
	Categories   *MockCategoryWriter
	Transactions *MockTransactionWriter
}

// NewWriter returns a Writer whose table writers and transaction are mocks.
// Expectations are asserted when the test finishes.
func NewWriter(t *testing.T) (*storage.Writer, *Mocks) {
	t.Helper()
	m := &Mocks{
		Tx:           &MockTx{},
		Users:        &MockUserWriter{},
		Categories:   &MockCategoryWriter{},
		Transactions: &MockTransactionWriter{},
	}
	t.Cleanup(func() {
		m.Tx.AssertExpectations(t)
		m.Users.AssertExpectations(t)
		m.Categories.AssertExpectations(t)
		m.Transactions.AssertExpectations(t)
	})
	return storage.NewWriterWith(m.Tx, m.Users, m.Categories, m.Transactions), m
}

// -- Tx --

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// -- Users --

type MockUserWriter struct {
	mock.Mock
}

func (m *MockUserWriter) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserWriter) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserWriter) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserWriter) Insert(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	args := m.Called(ctx, create)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// -- Categories --

type MockCategoryWriter struct {
	mock.Mock
}

func (m *MockCategoryWriter) FindByName(ctx context.Context, userID uuid.UUID, name string) (*category.Category, error) {
	args := m.Called(ctx, userID, name)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *MockCategoryWriter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).([]*category.Category)
	return c, args.Error(1)
}

func (m *MockCategoryWriter) Insert(ctx context.Context, userID uuid.UUID, name string) (*category.Category, error) {
	args := m.Called(ctx, userID, name)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

// -- Transactions --

type MockTransactionWriter struct {
	mock.Mock
}

func (m *MockTransactionWriter) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}

func (m *MockTransactionWriter) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	t, _ := args.Get(0).([]*transaction.Transaction)
	return t, args.Error(1)
}

func (m *MockTransactionWriter) TotalsForPeriod(ctx context.Context, userID uuid.UUID, period transaction.DateRange) (*transaction.PeriodTotals, error) {
	args := m.Called(ctx, userID, period)
	t, _ := args.Get(0).(*transaction.PeriodTotals)
	return t, args.Error(1)
}

func (m *MockTransactionWriter) ExpensesByCategory(ctx context.Context, userID uuid.UUID, period transaction.DateRange) ([]*transaction.CategoryTotal, error) {
	args := m.Called(ctx, userID, period)
	t, _ := args.Get(0).([]*transaction.CategoryTotal)
	return t, args.Error(1)
}

func (m *MockTransactionWriter) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	t, _ := args.Get(0).([]*transaction.Transaction)
	return t, args.Error(1)
}

func (m *MockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	t, _ := args.Get(0).(*transaction.Transaction)
	return t, args.Error(1)
}
