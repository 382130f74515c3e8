package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
// Fields are left untyped so that absent and malformed values both reach the
// service and come back as 400 responses.
type CreateTransactionBody struct {
	Description any `json:"description,omitempty" doc:"Description of the transaction"`
	Amount      any `json:"amount,omitempty" doc:"Amount as a number or numeric string, the sign is ignored"`
	Type        any `json:"type,omitempty" doc:"income or expense"`
	Category    any `json:"category,omitempty" doc:"Category name, created when the user has none by that name"`
	Date        any `json:"date,omitempty" doc:"ISO-8601 date or timestamp, UTC when no offset is given"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   Transaction
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, input service.TransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/transactions",
		Summary:       "Create transaction",
		Description:   "Records an income or expense for the authenticated user.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{auth.SecuritySchemeName: {}}},
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing authorization token")
	}

	logData := logging.GetLogData(ctx)
	logData.AddData("userID", userID.String())

	endTimer := logData.AddTiming("createTransactionMs")
	created, err := h.TransactionService.CreateTransaction(ctx, userID, service.TransactionInput{
		Description: input.Body.Description,
		Amount:      input.Body.Amount,
		Type:        input.Body.Type,
		Category:    input.Body.Category,
		Date:        input.Body.Date,
	})
	endTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   NewTransaction(*created),
	}, nil
}
