package transaction

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert stores create.Amount as given; callers pass the magnitude.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	date := create.Date
	if date.IsZero() {
		date = time.Now()
	}

	query := psql.Insert(
		im.Into(sqlconfig.TransactionsTable, "description", "amount", "date", "type", "user_id", "category_id"),
		im.Values(
			psql.Arg(create.Description),
			psql.Arg(create.Amount),
			psql.Arg(date.UTC()),
			psql.Arg(string(create.Type)),
			psql.Arg(create.UserID),
			psql.Arg(create.CategoryID),
		),
		im.Returning("id", "description", "amount", "date", "type", "user_id", "category_id", "created_at"),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return &row, nil
}
