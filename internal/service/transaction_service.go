package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/events"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

const defaultListLimit = 20

const (
	msgMissingFields = "missing required fields"
	msgInvalidFormat = "invalid data format"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type transactionLister interface {
	List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	operator  actionProcessor
	reader    transactionLister
	publisher events.Publisher
	log       *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(op actionProcessor, reader transactionLister, publisher events.Publisher, log *logrus.Logger) *TransactionService {
	return &TransactionService{
		operator:  op,
		reader:    reader,
		publisher: publisher,
		log:       log,
	}
}

// CreateTransaction validates the input, resolves the category by name and
// records the transaction in one unit of work. The amount is stored as a
// magnitude; the type alone carries the sign.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input TransactionInput) (*Transaction, error) {
	for _, field := range []any{input.Description, input.Amount, input.Type, input.Category, input.Date} {
		if !present(field) {
			return nil, &ValidationError{Message: msgMissingFields}
		}
	}

	description, err := textField("description", input.Description, sqlconfig.DescriptionMaxLength)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: err}
	}
	categoryName, err := textField("category", input.Category, sqlconfig.CategoryNameMaxLength)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: err}
	}
	rawType, ok := input.Type.(string)
	if !ok {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: fmt.Errorf("type has unsupported type %T", input.Type)}
	}
	txType, err := ParseTransactionType(rawType)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: err}
	}
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: err}
	}
	rawDate, ok := input.Date.(string)
	if !ok {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: fmt.Errorf("date has unsupported type %T", input.Date)}
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, &ValidationError{Message: msgInvalidFormat, Err: err}
	}

	action := &actions.CreateTransaction{
		UserID:       userID,
		CategoryName: categoryName,
		Description:  description,
		Amount:       amount.Abs(),
		Type:         txType.toStorage(),
		Date:         date,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, classifyWriteError(err)
	}

	created, err := transactionFromStorage(action.Created)
	if err != nil {
		return nil, err
	}

	event := events.NewEvent(events.TransactionCreated, map[string]any{
		"id":       created.ID,
		"user_id":  created.UserID,
		"type":     created.Type.String(),
		"amount":   created.SignedAmount().String(),
		"category": created.Category,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithField("transactionID", created.ID).Warn("TransactionService.CreateTransaction.publishFailed")
	}

	return &created, nil
}

// ListTransactions returns a page of the user's transactions, newest first.
// A nil cursor starts from the beginning with the default limit; the next
// cursor is nil on the last page.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultListLimit
	offset := 0
	maxCreationTime := time.Now().UTC()
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxCreationTime = cursor.MaxCreationTime
	}

	// one extra row tells us whether another page exists
	rows, err := s.reader.List(ctx, &transaction.TransactionFilter{
		UserID:          userID,
		Limit:           limit + 1,
		Offset:          offset,
		MaxCreationTime: &maxCreationTime,
	})
	if err != nil {
		return nil, nil, err
	}

	var next *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		next = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: maxCreationTime,
		}
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		converted, err := transactionFromStorage(row)
		if err != nil {
			return nil, nil, err
		}
		result[i] = converted
	}
	return result, next, nil
}

// present reports whether a field was supplied. Strings holding only
// whitespace count as absent.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// textField returns v unchanged when it is a string of at most maxLen
// characters.
func textField(name string, v any, maxLen int) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s has unsupported type %T", name, v)
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", fmt.Errorf("%s is longer than %d characters", name, maxLen)
	}
	return s, nil
}

func parseAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return decimal.Zero, fmt.Errorf("amount %v is not finite", a)
		}
		return decimal.NewFromFloat(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	case json.Number:
		return decimal.NewFromString(a.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(a))
	case decimal.Decimal:
		return a, nil
	default:
		return decimal.Zero, fmt.Errorf("amount has unsupported type %T", v)
	}
}

// parseDate accepts ISO-8601 timestamps with or without an offset and bare
// dates. Values without an offset are taken as UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func classifyWriteError(err error) error {
	switch {
	case errors.Is(err, sqlconfig.ErrUniqueViolation):
		return &ConflictError{Message: "conflicting write, please retry", Err: err}
	case errors.Is(err, sqlconfig.ErrValueTooLong):
		return &ValidationError{Message: msgInvalidFormat, Err: err}
	default:
		return err
	}
}
