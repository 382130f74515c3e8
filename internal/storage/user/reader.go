package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns nil when no user has the id.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

// FindByEmail returns nil when no user has the email.
func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, psql.Quote("email").EQ(psql.Arg(email)))
}

func (r *Reader) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := psql.Select(
		sm.Columns("COUNT(*)"),
		sm.From(sqlconfig.UsersTable),
		sm.Where(psql.Quote("username").EQ(psql.Arg(username)).Or(psql.Quote("email").EQ(psql.Arg(email)))),
	)

	count, err := bob.One(ctx, r.exec, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Reader) findOne(ctx context.Context, where bob.Expression) (*User, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.UsersTable),
		sm.Where(where),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
