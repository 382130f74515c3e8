package category

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

// FindByName returns nil when the user has no category with that exact name.
func (r *Reader) FindByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.CategoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Reader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.CategoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
