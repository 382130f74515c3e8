package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// CreateTransaction resolves the category by name and records the transaction.
// Amount must already be a magnitude.
type CreateTransaction struct {
	UserID       uuid.UUID
	CategoryName string
	Description  string
	Amount       decimal.Decimal
	Type         sqlconfig.TransactionType
	Date         time.Time

	Created *transaction.Transaction
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	cat, err := FindOrCreateCategory(ctx, writer, t.UserID, t.CategoryName)
	if err != nil {
		return err
	}

	storageCreate := &transaction.TransactionCreate{
		UserID:      t.UserID,
		CategoryID:  cat.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
	}
	created, err := writer.Transaction.Insert(ctx, storageCreate)
	if err != nil {
		return err
	}

	created.CategoryName = cat.Name
	t.Created = created
	return nil
}
