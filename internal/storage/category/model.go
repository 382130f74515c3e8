package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// DefaultNames are the categories seeded for every new user.
var DefaultNames = []string{"Food", "Travel", "Shopping", "Entertainment", "Income", "Other"}

// Category represents a category record. Names are unique per user and
// matched exactly.
type Category struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ICategoryReader interface {
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
}

type ICategoryWriter interface {
	ICategoryReader
	Insert(ctx context.Context, userID uuid.UUID, name string) (*Category, error)
}

var columns = []any{"id", "name", "user_id", "created_at"}
