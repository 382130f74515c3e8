package transaction

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	Description string  `json:"description" doc:"Description of the transaction"`
	Amount      float64 `json:"amount" doc:"Signed amount, negative for expenses"`
	Date        string  `json:"date" format:"date-time" doc:"RFC3339 transaction date in UTC, with fractional seconds when present"`
	Type        string  `json:"type" enum:"income,expense" doc:"Transaction type"`
	Category    string  `json:"category" doc:"Category name"`
	UserID      string  `json:"user_id" doc:"Owner UUID"`
}

// NewTransaction converts a service transaction to its external form.
func NewTransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.SignedAmount().InexactFloat64(),
		Date:        tx.Date.UTC().Format(time.RFC3339Nano),
		Type:        tx.Type.String(),
		Category:    tx.Category,
		UserID:      tx.UserID.String(),
	}
}
