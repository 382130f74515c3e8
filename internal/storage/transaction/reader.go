package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
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

var joinedColumns = []any{
	"t.id", "t.description", "t.amount", "t.date", "t.type",
	"t.user_id", "t.category_id", "c.name AS category_name", "t.created_at",
}

func joinedSelect(mods ...bob.Mod[*dialect.SelectQuery]) bob.BaseQuery[*dialect.SelectQuery] {
	base := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(joinedColumns...),
		sm.From(sqlconfig.TransactionsTable).As("t"),
		sm.InnerJoin(sqlconfig.CategoriesTable).As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
	}
	return psql.Select(append(base, mods...)...)
}

func inPeriod(period DateRange) []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.Quote("t", "date").GTE(psql.Arg(period.From))),
		sm.Where(psql.Quote("t", "date").LT(psql.Arg(period.To))),
	}
}

// FindByID returns nil when the transaction does not exist or belongs to
// another user.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	query := joinedSelect(
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListRecent returns the user's newest transactions first.
func (r *Reader) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error) {
	query := joinedSelect(
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("t", "date")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
		sm.Limit(limit),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// List pages through the user's transactions newest first.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.MaxCreationTime != nil {
		mods = append(mods, sm.Where(psql.Quote("t", "created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	mods = append(mods,
		sm.OrderBy(psql.Quote("t", "date")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
		sm.Limit(filter.Limit),
		sm.Offset(filter.Offset),
	)

	rows, err := bob.All(ctx, r.exec, joinedSelect(mods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

type typeTotal struct {
	Type  sqlconfig.TransactionType `db:"type"`
	Total decimal.Decimal           `db:"total"`
}

func (r *Reader) TotalsForPeriod(ctx context.Context, userID uuid.UUID, period DateRange) (*PeriodTotals, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("t.type", "COALESCE(SUM(t.amount), 0) AS total"),
		sm.From(sqlconfig.TransactionsTable).As("t"),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.GroupBy(psql.Quote("t", "type")),
	}
	query := psql.Select(append(mods, inPeriod(period)...)...)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[typeTotal]())
	if err != nil {
		return nil, err
	}

	totals := &PeriodTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case sqlconfig.TransactionTypeIncome:
			totals.Income = row.Total
		case sqlconfig.TransactionTypeExpense:
			totals.Expense = row.Total
		}
	}
	return totals, nil
}

// ExpensesByCategory sums expense magnitudes per category name. Categories
// without expenses in the period are omitted.
func (r *Reader) ExpensesByCategory(ctx context.Context, userID uuid.UUID, period DateRange) ([]*CategoryTotal, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("c.name AS name", "SUM(t.amount) AS value"),
		sm.From(sqlconfig.TransactionsTable).As("t"),
		sm.InnerJoin(sqlconfig.CategoriesTable).As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("t", "type").EQ(psql.Arg(string(sqlconfig.TransactionTypeExpense)))),
		sm.GroupBy(psql.Quote("c", "name")),
		sm.OrderBy(psql.Quote("c", "name")).Asc(),
	}
	query := psql.Select(append(mods, inPeriod(period)...)...)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[CategoryTotal]())
	if err != nil {
		return nil, err
	}

	result := make([]*CategoryTotal, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
