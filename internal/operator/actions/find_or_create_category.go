package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
)

// FindOrCreateCategory returns the user's category with exactly this name,
// inserting it inside the writer's transaction when missing. A concurrent
// insert of the same name surfaces as sqlconfig.ErrUniqueViolation.
func FindOrCreateCategory(ctx context.Context, writer *storage.Writer, userID uuid.UUID, name string) (*category.Category, error) {
	existing, err := writer.Category.FindByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return writer.Category.Insert(ctx, userID, name)
}
