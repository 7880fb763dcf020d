// internal/api/types/response.go
package types

import (
	"github.com/shopspring/decimal"

	"finflow-dashboard/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
// Clients surface Message to end users verbatim.
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreatedResponse carries the identifier of a newly created record.
type CreatedResponse struct {
	ID string `json:"id"`
}

// CreateTransactionRequest is the body of POST /transactions.
type CreateTransactionRequest struct {
	Amount    decimal.Decimal          `json:"amount"`
	Currency  string                   `json:"currency,omitempty"`
	Status    domain.TransactionStatus `json:"status,omitempty"`
	ContactID string                   `json:"contact_id"`
}

// SetStatusRequest is the body of POST /transactions/status.
type SetStatusRequest struct {
	TransactionIDs []string                 `json:"transaction_ids"`
	Status         domain.TransactionStatus `json:"status"`
}

// SetStatusResponse acknowledges a bulk status update.
type SetStatusResponse struct {
	Updated int                      `json:"updated"`
	Status  domain.TransactionStatus `json:"status"`
}

// CreateContactRequest is the body of POST /contacts.
type CreateContactRequest struct {
	Name string `json:"name"`
}
