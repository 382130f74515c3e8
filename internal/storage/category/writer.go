package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
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

// Insert adds a category for the user. A duplicate name for the same user
// fails with sqlconfig.ErrUniqueViolation.
func (w *Writer) Insert(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	query := psql.Insert(
		im.Into(sqlconfig.CategoriesTable, "name", "user_id"),
		im.Values(psql.Arg(name), psql.Arg(userID)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[Category]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return &row, nil
}
