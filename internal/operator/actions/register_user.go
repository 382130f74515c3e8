package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/user"
)

// RegisterUser inserts the user and seeds the default categories.
type RegisterUser struct {
	Username     string
	Email        string
	PasswordHash string

	Created *user.User
	IAction
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	exists, err := writer.User.ExistsByUsernameOrEmail(ctx, r.Username, r.Email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username or email taken", sqlconfig.ErrUniqueViolation)
	}

	created, err := writer.User.Insert(ctx, &user.UserCreate{
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	})
	if err != nil {
		return err
	}

	for _, name := range category.DefaultNames {
		if _, err := writer.Category.Insert(ctx, created.ID, name); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	r.Created = created
	return nil
}
