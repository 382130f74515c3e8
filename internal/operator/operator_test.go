package operator

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/storagetest"
)

type fakeFactory struct {
	writer *storage.Writer
	err    error
}

func (f *fakeFactory) Write(_ context.Context) (*storage.Writer, error) {
	return f.writer, f.err
}

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	writer, m := storagetest.NewWriter(t)
	m.Tx.On("Commit", mock.Anything).Return(nil).Once()

	op := NewOperator(&fakeFactory{writer: writer}, quietLogger())
	performed := false
	err := op.Process(context.Background(), funcAction(func(_ context.Context, w *storage.Writer) error {
		performed = w == writer
		return nil
	}))

	assert.NoError(t, err)
	assert.True(t, performed)
	m.Tx.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	writer, m := storagetest.NewWriter(t)
	m.Tx.On("Rollback", mock.Anything).Return(nil).Once()

	op := NewOperator(&fakeFactory{writer: writer}, quietLogger())
	err := op.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("boom")
	}))

	assert.EqualError(t, err, "boom")
	m.Tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestProcess_RollbackErrorKeepsActionError(t *testing.T) {
	writer, m := storagetest.NewWriter(t)
	m.Tx.On("Rollback", mock.Anything).Return(errors.New("conn closed")).Once()

	op := NewOperator(&fakeFactory{writer: writer}, quietLogger())
	err := op.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("boom")
	}))

	assert.EqualError(t, err, "boom")
}

func TestProcess_BeginError(t *testing.T) {
	op := NewOperator(&fakeFactory{err: errors.New("pool exhausted")}, quietLogger())
	called := false
	err := op.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		called = true
		return nil
	}))

	assert.EqualError(t, err, "pool exhausted")
	assert.False(t, called)
}

func TestProcess_CommitUniqueViolation(t *testing.T) {
	writer, m := storagetest.NewWriter(t)
	m.Tx.On("Commit", mock.Anything).Return(sqlconfig.ErrUniqueViolation).Once()

	op := NewOperator(&fakeFactory{writer: writer}, quietLogger())
	err := op.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, sqlconfig.ErrUniqueViolation)
}
