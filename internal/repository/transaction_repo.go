// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"finflow-dashboard/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// ListTransactionsByContact returns a contact's transactions, newest first,
	// restricted to the filter's status when it is set.
	ListTransactionsByContact(ctx context.Context, q DBExecutor, contactID string, filter domain.StatusFilter) ([]domain.Transaction, error)
	// UpdateTransactionStatus sets status on every listed transaction and reports how many rows changed.
	UpdateTransactionStatus(ctx context.Context, q DBExecutor, ids []string, status domain.TransactionStatus) (int64, error)
}
