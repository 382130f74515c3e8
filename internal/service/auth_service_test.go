package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/user"
)

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// plainHasher prefixes the password so tests can tell hashes apart.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(userID uuid.UUID) (string, error) { return "token-for-" + userID.String(), nil }

type authFixture struct {
	svc       *AuthService
	users     *mockUserFinder
	op        *fakeOperator
	publisher *mockPublisher
}

func newAuthFixture(perform func(actions.IAction) error) *authFixture {
	f := &authFixture{
		users:     &mockUserFinder{},
		op:        &fakeOperator{perform: perform},
		publisher: &mockPublisher{},
	}
	f.svc = NewAuthService(f.users, f.op, plainHasher{}, stubTokens{}, f.publisher, quietLogger())
	return f
}

// -- Register tests --

func TestRegister_Success(t *testing.T) {
	var captured *actions.RegisterUser
	userID := uuid.Must(uuid.NewV4())
	f := newAuthFixture(func(action actions.IAction) error {
		captured = action.(*actions.RegisterUser)
		captured.Created = &user.User{ID: userID, Username: captured.Username, Email: captured.Email, PasswordHash: captured.PasswordHash}
		return nil
	})
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.UserRegistered
	})).Return(nil).Once()

	created, err := f.svc.Register(context.Background(), " alice", "alice@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, userID, created.ID)
	assert.Equal(t, " alice", captured.Username)
	assert.Equal(t, "hashed:pw", captured.PasswordHash)
	f.publisher.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	cases := [][3]string{
		{"", "alice@example.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "alice@example.com", ""},
		{"  ", "alice@example.com", "pw"},
	}
	for _, c := range cases {
		f := newAuthFixture(func(actions.IAction) error { return nil })

		_, err := f.svc.Register(context.Background(), c[0], c[1], c[2])

		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "%v", c)
		assert.Equal(t, "missing username, email, or password", ve.Message)
		assert.Zero(t, f.op.calls)
	}
}

func TestRegister_TooLong(t *testing.T) {
	cases := map[string][3]string{
		"username": {strings.Repeat("u", 81), "alice@example.com", "pw"},
		"email":    {"alice", strings.Repeat("e", 121), "pw"},
		"password": {"alice", "alice@example.com", strings.Repeat("p", 73)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAuthFixture(func(actions.IAction) error { return nil })

			_, err := f.svc.Register(context.Background(), c[0], c[1], c[2])

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "username, email, or password too long", ve.Message)
			assert.Zero(t, f.op.calls)
		})
	}
}

func TestRegister_LongestAcceptedPassword(t *testing.T) {
	f := newAuthFixture(func(action actions.IAction) error {
		register := action.(*actions.RegisterUser)
		register.Created = &user.User{ID: uuid.Must(uuid.NewV4()), Username: register.Username}
		return nil
	})
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Register(context.Background(), "alice", "alice@example.com", strings.Repeat("p", 72))

	require.NoError(t, err)
	assert.Equal(t, 1, f.op.calls)
}

func TestRegister_ValueTooLongFromStore(t *testing.T) {
	f := newAuthFixture(func(actions.IAction) error {
		return fmt.Errorf("insert user: %w", sqlconfig.ErrValueTooLong)
	})

	_, err := f.svc.Register(context.Background(), "alice", "alice@example.com", "pw")

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestRegister_Duplicate(t *testing.T) {
	f := newAuthFixture(func(actions.IAction) error {
		return fmt.Errorf("%w: username or email taken", sqlconfig.ErrUniqueViolation)
	})

	_, err := f.svc.Register(context.Background(), "alice", "alice@example.com", "pw")

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "email or username already exists", ce.Message)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRegister_StorageError(t *testing.T) {
	f := newAuthFixture(func(actions.IAction) error { return errBoom })

	_, err := f.svc.Register(context.Background(), "alice", "alice@example.com", "pw")

	assert.ErrorIs(t, err, errBoom)
	assertNotValidation(t, err)
}

// -- Login tests --

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(nil)
	userID := uuid.Must(uuid.NewV4())
	f.users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&user.User{ID: userID, PasswordHash: "hashed:pw"}, nil)

	token, err := f.svc.Login(context.Background(), "alice@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "token-for-"+userID.String(), token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(nil)
	f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := f.svc.Login(context.Background(), "nobody@example.com", "pw")

	var ae *AuthenticationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "bad email or password", ae.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(nil)
	f.users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&user.User{ID: uuid.Must(uuid.NewV4()), PasswordHash: "hashed:pw"}, nil)

	_, err := f.svc.Login(context.Background(), "alice@example.com", "nope")

	var ae *AuthenticationError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "bad email or password", ae.Message)
}

func TestLogin_StorageError(t *testing.T) {
	f := newAuthFixture(nil)
	f.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, errBoom)

	_, err := f.svc.Login(context.Background(), "alice@example.com", "pw")

	assert.ErrorIs(t, err, errBoom)
}

// -- error taxonomy --

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid data format", (&ValidationError{Message: "invalid data format"}).Error())
	assert.Equal(t, "invalid data format: boom", (&ValidationError{Message: "invalid data format", Err: errBoom}).Error())
	assert.ErrorIs(t, &ConflictError{Message: "dup", Err: errBoom}, errBoom)
	assert.Equal(t, "bad email or password", (&AuthenticationError{Message: "bad email or password"}).Error())
}
