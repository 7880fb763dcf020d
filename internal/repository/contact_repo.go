// internal/repository/contact_repo.go
package repository

import (
	"context"

	"finflow-dashboard/internal/domain"
)

// ContactRepository defines the interface for contact data operations.
type ContactRepository interface {
	// CreateContact adds a new contact using the provided DBExecutor.
	CreateContact(ctx context.Context, q DBExecutor, contact *domain.Contact) error
	// GetContactByID retrieves a contact by its ID using the provided DBExecutor.
	GetContactByID(ctx context.Context, q DBExecutor, id string) (*domain.Contact, error)
}
