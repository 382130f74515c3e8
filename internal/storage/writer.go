package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
	"github.com/carson-networks/finance-tracker/internal/storage/user"
)

// Writer groups the table writers sharing one database transaction.
type Writer struct {
	tx          TxFinisher
	User        user.IUserWriter
	Category    category.ICategoryWriter
	Transaction transaction.ITransactionWriter
}

// TxFinisher ends a database transaction.
type TxFinisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          tx,
		User:        user.NewWriter(tx),
		Category:    category.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
	}
}

// NewWriterWith builds a Writer from arbitrary table writers; used by tests.
func NewWriterWith(tx TxFinisher, users user.IUserWriter, categories category.ICategoryWriter, transactions transaction.ITransactionWriter) *Writer {
	return &Writer{
		tx:          tx,
		User:        users,
		Category:    categories,
		Transaction: transactions,
	}
}

// Commit reports unique violations detected at commit time as
// sqlconfig.ErrUniqueViolation.
func (w *Writer) Commit(ctx context.Context) error {
	return sqlconfig.ClassifyError(w.tx.Commit(ctx))
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
