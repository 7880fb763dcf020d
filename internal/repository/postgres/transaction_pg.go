// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, contact_id, amount, currency, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.ContactID,
		transaction.Amount,
		transaction.Currency,
		transaction.Status,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByContact retrieves a contact's transactions, newest first.
func (r *TransactionRepository) ListTransactionsByContact(ctx context.Context, q repository.DBExecutor, contactID string, filter domain.StatusFilter) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}

	query := `
		SELECT id, contact_id, amount, currency, status, created_at
		FROM transactions
		WHERE contact_id = $1`
	args := []interface{}{contactID}
	if status, ok := filter.Status(); ok {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	if err := q.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for contact %s: %w", contactID, err)
	}
	return transactions, nil
}

// UpdateTransactionStatus moves every listed transaction to status in one statement.
func (r *TransactionRepository) UpdateTransactionStatus(ctx context.Context, q repository.DBExecutor, ids []string, status domain.TransactionStatus) (int64, error) {
	query := `UPDATE transactions SET status = $1 WHERE id = ANY($2)`
	result, err := q.ExecContext(ctx, query, status, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to update status of %d transactions: %w", len(ids), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected after status update: %w", err)
	}
	return rowsAffected, nil
}
