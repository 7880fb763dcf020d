// internal/domain/contact.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is the parent record that owns transactions.
type Contact struct {
	ID        string    `db:"id" json:"id"`                 // UUID, primary key
	Name      string    `db:"name" json:"name"`             // Display name
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewContact creates a new Contact instance.
func NewContact(name string) *Contact {
	return &Contact{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
