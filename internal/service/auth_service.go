package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/user"
)

const (
	msgMissingCredentials = "missing username, email, or password"
	msgUserExists         = "email or username already exists"
	msgBadCredentials     = "bad email or password"
	msgCredentialsTooLong = "username, email, or password too long"
)

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type tokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// AuthService registers users and exchanges credentials for access tokens.
type AuthService struct {
	users     userFinder
	operator  actionProcessor
	hasher    passwordHasher
	tokens    tokenIssuer
	publisher events.Publisher
	log       *logrus.Logger
}

func NewAuthService(users userFinder, op actionProcessor, hasher passwordHasher, tokens tokenIssuer, publisher events.Publisher, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		operator:  op,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		log:       log,
	}
}

// Register creates the user together with the default categories. Either all
// of it is committed or none of it is. Username and email are stored as given.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, &ValidationError{Message: msgMissingCredentials}
	}
	if utf8.RuneCountInString(username) > sqlconfig.UsernameMaxLength ||
		utf8.RuneCountInString(email) > sqlconfig.EmailMaxLength ||
		len(password) > auth.MaxPasswordBytes {
		return nil, &ValidationError{Message: msgCredentialsTooLong}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	action := &actions.RegisterUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		switch {
		case errors.Is(err, sqlconfig.ErrUniqueViolation):
			return nil, &ConflictError{Message: msgUserExists, Err: err}
		case errors.Is(err, sqlconfig.ErrValueTooLong):
			return nil, &ValidationError{Message: msgCredentialsTooLong, Err: err}
		default:
			return nil, err
		}
	}

	created := userFromStorage(action.Created)

	event := events.NewEvent(events.UserRegistered, map[string]any{
		"id":       created.ID,
		"username": created.Username,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithField("userID", created.ID).Warn("AuthService.Register.publishFailed")
	}

	return created, nil
}

// Login returns an access token. Unknown emails and wrong passwords produce
// the same AuthenticationError.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", &AuthenticationError{Message: msgBadCredentials}
	}

	if err := s.hasher.Compare(found.PasswordHash, password); err != nil {
		return "", &AuthenticationError{Message: msgBadCredentials}
	}

	return s.tokens.Issue(found.ID)
}
