package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// PageCursor is echoed back by clients to continue a listing.
type PageCursor struct {
	Offset        int    `json:"offset" minimum:"0" doc:"Rows already returned"`
	Limit         int    `json:"limit" minimum:"1" maximum:"100" doc:"Rows per page"`
	CreatedBefore string `json:"createdBefore" format:"date-time" doc:"Rows created after this instant are left out"`
}

func (c *PageCursor) toService() (*service.TransactionCursor, error) {
	createdBefore, err := time.Parse(time.RFC3339Nano, c.CreatedBefore)
	if err != nil {
		return nil, huma.Error400BadRequest("cursor createdBefore is not a timestamp", err)
	}
	return &service.TransactionCursor{
		Position:        c.Offset,
		Limit:           c.Limit,
		MaxCreationTime: createdBefore,
	}, nil
}

func pageCursorFrom(c *service.TransactionCursor) *PageCursor {
	if c == nil {
		return nil
	}
	return &PageCursor{
		Offset:        c.Position,
		Limit:         c.Limit,
		CreatedBefore: c.MaxCreationTime.UTC().Format(time.RFC3339Nano),
	}
}

type ListTransactionsBody struct {
	Cursor *PageCursor `json:"cursor,omitempty" doc:"Omit for the first page"`
}

type ListTransactionsInput struct {
	Body ListTransactionsBody
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions" doc:"Newest first"`
	Next         *PageCursor   `json:"next,omitempty" doc:"Present while more rows remain"`
}

type ListTransactionsOutput struct {
	Body TransactionPage
}

type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler pages through the caller's own transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/transactions/list",
		Summary:     "List transactions",
		Description: "Pages through the authenticated user's transactions, newest first.",
		Tags:        []string{"Transactions"},
		Security:    []map[string][]string{{auth.SecuritySchemeName: {}}},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing authorization token")
	}

	var cursor *service.TransactionCursor
	if input.Body.Cursor != nil {
		var err error
		if cursor, err = input.Body.Cursor.toService(); err != nil {
			return nil, err
		}
	}

	logData := logging.GetLogData(ctx)
	logData.AddData("userID", userID.String())

	endTimer := logData.AddTiming("listTransactionsMs")
	rows, next, err := h.TransactionService.ListTransactions(ctx, userID, cursor)
	endTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(rows))

	page := TransactionPage{
		Transactions: make([]Transaction, 0, len(rows)),
		Next:         pageCursorFrom(next),
	}
	for _, row := range rows {
		page.Transactions = append(page.Transactions, NewTransaction(row))
	}
	return &ListTransactionsOutput{Body: page}, nil
}
