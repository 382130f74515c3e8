package sqlconfig

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	uniqueViolationCode = "23505"
	stringTooLongCode   = "22001"
)

var (
	// ErrUniqueViolation marks errors caused by a unique constraint, whether
	// raised by a statement or at commit time.
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrValueTooLong    = errors.New("value too long for column")
)

// ClassifyError wraps Postgres unique violations and over-long strings so
// callers can match them with errors.Is. Other errors are returned untouched.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %s: %w", ErrUniqueViolation, pqErr.Constraint, err)
	case stringTooLongCode:
		return fmt.Errorf("%w: %w", ErrValueTooLong, err)
	default:
		return err
	}
}
