package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// WriterFactory opens a unit of work. *storage.Storage implements it.
type WriterFactory interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator runs actions inside a single database transaction each.
type Operator struct {
	storage WriterFactory
	log     *logrus.Logger
}

func NewOperator(s WriterFactory, log *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		log:     log,
	}
}

// Process performs the action and commits exactly once. Any action error rolls
// the whole unit back so no partial write is ever visible.
func (o *Operator) Process(ctx context.Context, action actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	err = action.Perform(ctx, writer)
	if err != nil {
		if rbErr := writer.Rollback(ctx); rbErr != nil {
			o.log.WithError(rbErr).Warn("Operator.Process.rollbackFailed")
		}
		return err
	}

	return writer.Commit(ctx)
}
