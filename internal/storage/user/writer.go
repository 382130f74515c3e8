package user

import (
	"context"

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

func (w *Writer) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	query := psql.Insert(
		im.Into(sqlconfig.UsersTable, "username", "email", "password_hash"),
		im.Values(psql.Arg(create.Username), psql.Arg(create.Email), psql.Arg(create.PasswordHash)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[User]())
	if err != nil {
		return nil, sqlconfig.ClassifyError(err)
	}
	return &row, nil
}
