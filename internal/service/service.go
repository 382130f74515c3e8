package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Auth        *AuthService
	Transaction *TransactionService
	Dashboard   *DashboardService
}

// NewService wires the services to storage. Writes go through the operator;
// reads use the connection pool directly.
func NewService(store *storage.Storage, hasher *auth.Hasher, tokens *auth.TokenIssuer, publisher events.Publisher, log *logrus.Logger) *Service {
	op := operator.NewOperator(store, log)
	reader := store.Read()

	return &Service{
		Auth:        NewAuthService(reader.Users, op, hasher, tokens, publisher, log),
		Transaction: NewTransactionService(op, reader.Transactions, publisher, log),
		Dashboard:   NewDashboardService(reader.Transactions),
	}
}
