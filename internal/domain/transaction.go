// internal/domain/transaction.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionStatus defines the status of a financial transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusCompleted TransactionStatus = "Completed"
	TransactionStatusFailed    TransactionStatus = "Failed"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether a bulk update may move transactions into s.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// ParseTransactionStatus converts raw input into a TransactionStatus.
func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	s := TransactionStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("unknown transaction status %q", raw)
	}
	return s, nil
}

// StatusFilter restricts a transaction listing to one status.
// The zero value means no filter.
type StatusFilter string

const StatusFilterAll StatusFilter = ""

// ParseStatusFilter accepts "" or any valid TransactionStatus.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusFilterAll, nil
	}
	s, err := ParseTransactionStatus(raw)
	if err != nil {
		return "", err
	}
	return StatusFilter(s), nil
}

// Status returns the filtered status and false when the filter is empty.
func (f StatusFilter) Status() (TransactionStatus, bool) {
	if f == StatusFilterAll {
		return "", false
	}
	return TransactionStatus(f), true
}

// Amounts are stored as NUMERIC(20, 4): at most four fractional digits and
// sixteen integer digits.
const AmountScale = 4

// MaxAmount is the smallest amount that no longer fits the column.
var MaxAmount = decimal.New(1, 16)

// Transaction represents a financial transaction owned by a contact.
type Transaction struct {
	ID        string            `db:"id" json:"id"`                 // UUID, primary key
	ContactID string            `db:"contact_id" json:"contact_id"` // Owning parent record
	Amount    decimal.Decimal   `db:"amount" json:"amount"`         // NUMERIC(20, 4) in DB
	Currency  string            `db:"currency" json:"currency"`     // ISO 4217 code
	Status    TransactionStatus `db:"status" json:"status"`         // Pending, Completed or Failed
	CreatedAt time.Time         `db:"created_at" json:"created_at"` // Timestamp of record creation
}

// TransactionFields are the caller-supplied fields of a new transaction.
type TransactionFields struct {
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency,omitempty"`
	Status    TransactionStatus `json:"status"`
	ContactID string            `json:"contact_id"`
}

// Validate checks the invariants every stored transaction must hold.
// The contact id is only checked for presence; its existence is the store's concern.
func (f TransactionFields) Validate() error {
	if err := ValidateAmount(f.Amount); err != nil {
		return err
	}
	if f.Currency != "" && !ValidCurrency(f.Currency) {
		return fmt.Errorf("currency must be a 3-letter ISO 4217 code, got %q", f.Currency)
	}
	if !f.Status.Valid() {
		return fmt.Errorf("unknown transaction status %q", f.Status)
	}
	if strings.TrimSpace(f.ContactID) == "" {
		return fmt.Errorf("contact id is required")
	}
	return nil
}

// NewTransaction creates a new Transaction instance with a fresh identifier.
func NewTransaction(fields TransactionFields) *Transaction {
	status := fields.Status
	if status == "" {
		status = TransactionStatusPending
	}
	return &Transaction{
		ID:        uuid.NewString(),
		ContactID: fields.ContactID,
		Amount:    fields.Amount,
		Currency:  fields.Currency,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// ValidateAmount checks that amount is positive and storable without rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("amount %s has more than %d decimal places", amount, AmountScale)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("amount %s is too large", amount)
	}
	return nil
}

// ValidCurrency reports whether code looks like an ISO 4217 code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ValidID reports whether id is a record identifier in canonical UUID form.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ParseAmount parses user-entered text into a strictly positive amount.
// Empty, non-numeric, zero and negative inputs are rejected, as are amounts
// ValidateAmount refuses.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
