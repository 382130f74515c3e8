package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
)

// fakeOperator hands each action to perform instead of running it against a
// database.
type fakeOperator struct {
	perform func(action actions.IAction) error
	calls   int
}

func (f *fakeOperator) Process(_ context.Context, action actions.IAction) error {
	f.calls++
	return f.perform(action)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

var errBoom = errors.New("boom")

func assertNotValidation(t *testing.T, err error) {
	t.Helper()
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
