// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/repository"
	"finflow-dashboard/internal/util"
	"finflow-dashboard/pkg/db"
)

// TransactionService defines the record-store operations behind the dashboard.
type TransactionService interface {
	GetTransactions(ctx context.Context, contactID string, filter domain.StatusFilter) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, fields domain.TransactionFields) (*domain.Transaction, error)
	SetStatus(ctx context.Context, ids []string, status domain.TransactionStatus) (int, error)
	CreateContact(ctx context.Context, name string) (*domain.Contact, error)
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional statements (e.g., *sqlx.DB)
	contactRepo     repository.ContactRepository
	transactionRepo repository.TransactionRepository
	defaultCurrency string
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	contactRepo repository.ContactRepository,
	transactionRepo repository.TransactionRepository,
	defaultCurrency string,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		contactRepo:     contactRepo,
		transactionRepo: transactionRepo,
		defaultCurrency: defaultCurrency,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// GetTransactions lists a contact's transactions, optionally restricted to one status.
func (s *transactionService) GetTransactions(ctx context.Context, contactID string, filter domain.StatusFilter) ([]domain.Transaction, error) {
	if _, err := domain.ParseStatusFilter(string(filter)); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidStatus, err)
	}
	if err := s.ensureContact(ctx, contactID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsByContact(ctx, s.dbExecutor, contactID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction stores a new transaction for an existing contact.
// Status defaults to Pending and currency to the configured default.
func (s *transactionService) CreateTransaction(ctx context.Context, fields domain.TransactionFields) (*domain.Transaction, error) {
	if fields.Status == "" {
		fields.Status = domain.TransactionStatusPending
	}
	if fields.Currency == "" {
		fields.Currency = s.defaultCurrency
	}
	fields.Currency = strings.ToUpper(fields.Currency)
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}
	if err := s.ensureContact(ctx, fields.ContactID); err != nil {
		return nil, err
	}

	transaction := domain.NewTransaction(fields)
	if err := s.transactionRepo.CreateTransaction(ctx, s.dbExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return transaction, nil
}

// SetStatus moves every listed transaction to status atomically and returns
// how many distinct transactions were updated.
// If any id is unknown nothing is changed.
func (s *transactionService) SetStatus(ctx context.Context, ids []string, status domain.TransactionStatus) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, util.ErrEmptySelection
	}
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", util.ErrInvalidStatus, status)
	}
	for _, id := range ids {
		if !domain.ValidID(id) {
			return 0, fmt.Errorf("%w: transaction id %q is not a UUID", util.ErrInvalidInput, id)
		}
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return 0, fmt.Errorf("set status: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return 0, fmt.Errorf("set status: transaction controller does not implement DBExecutor")
	}

	updated, err := s.transactionRepo.UpdateTransactionStatus(ctx, txExecutor, ids, status)
	if err != nil {
		return 0, fmt.Errorf("set status: %w", err)
	}
	if updated != int64(len(ids)) {
		return 0, fmt.Errorf("set status: %w: %d of %d transactions exist", util.ErrTransactionNotFound, updated, len(ids))
	}

	if err := s.commitTx(txController); err != nil {
		return 0, fmt.Errorf("set status: failed to commit transaction: %w", err)
	}
	return len(ids), nil
}

// CreateContact stores a new parent record.
func (s *transactionService) CreateContact(ctx context.Context, name string) (*domain.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: contact name is required", util.ErrInvalidInput)
	}

	contact := domain.NewContact(name)
	if err := s.contactRepo.CreateContact(ctx, s.dbExecutor, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *transactionService) ensureContact(ctx context.Context, contactID string) error {
	if strings.TrimSpace(contactID) == "" {
		return fmt.Errorf("%w: contact id is required", util.ErrInvalidInput)
	}
	if !domain.ValidID(contactID) {
		return util.ErrContactNotFound
	}
	if _, err := s.contactRepo.GetContactByID(ctx, s.dbExecutor, contactID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return util.ErrContactNotFound
		}
		return fmt.Errorf("failed to check contact existence: %w", err)
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
