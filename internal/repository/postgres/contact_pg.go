// internal/repository/postgres/contact_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/repository"
	"finflow-dashboard/internal/util"
)

// ContactRepository implements repository.ContactRepository for PostgreSQL.
type ContactRepository struct{}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository() repository.ContactRepository {
	return &ContactRepository{}
}

// CreateContact inserts a new contact using the provided DBExecutor.
func (r *ContactRepository) CreateContact(ctx context.Context, q repository.DBExecutor, contact *domain.Contact) error {
	query := `INSERT INTO contacts (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := q.ExecContext(ctx, query, contact.ID, contact.Name, contact.CreatedAt); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetContactByID retrieves a contact by its ID using the provided DBExecutor.
func (r *ContactRepository) GetContactByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Contact, error) {
	var contact domain.Contact
	query := `SELECT id, name, created_at FROM contacts WHERE id = $1`
	err := q.GetContext(ctx, &contact, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact by ID %s: %w", id, err)
	}
	return &contact, nil
}
