// internal/service/transaction_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/repository"
	"finflow-dashboard/internal/util"
	"finflow-dashboard/pkg/db" // Import pkg/db for interfaces and function types

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

// MockContactRepository is a mock implementation of repository.ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateContact(ctx context.Context, q repository.DBExecutor, contact *domain.Contact) error {
	args := m.Called(ctx, q, contact)
	return args.Error(0)
}

func (m *MockContactRepository) GetContactByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Contact, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByContact(ctx context.Context, q repository.DBExecutor, contactID string, filter domain.StatusFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, contactID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, q repository.DBExecutor, ids []string, status domain.TransactionStatus) (int64, error) {
	args := m.Called(ctx, q, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implicitly implements repository.DBExecutor for testing purposes
// by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor // Embed MockDBExecutor to satisfy repository.DBExecutor interface
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

type fixture struct {
	contactRepo     *MockContactRepository
	transactionRepo *MockTransactionRepository
	txController    *MockTxController
	executor        *MockDBExecutor
	service         TransactionService
}

func newFixture() *fixture {
	f := &fixture{
		contactRepo:     new(MockContactRepository),
		transactionRepo: new(MockTransactionRepository),
		txController:    new(MockTxController),
		executor:        new(MockDBExecutor),
	}
	f.service = NewTransactionService(
		new(MockDBBeginner),
		f.executor,
		f.contactRepo,
		f.transactionRepo,
		"USD",
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
	)
	return f
}

const (
	contactID        = "5b0f3c9e-2d4a-4c7e-9a51-0e6f2b7d8c10"
	missingContactID = "9d2e7a41-8c3b-4f10-b6a2-3e5d1c0f7a94"
	txID1            = "1a7c2e9f-4b3d-4e8a-9c61-7f2b0d5e3a11"
	txID2            = "2b8d3fa0-5c4e-4f9b-8d72-803c1e6f4b22"
	txID9            = "9f4e1b6c-3a2d-4c8e-b7f1-5d0a9e2c6b99"
)

// TestGetTransactions tests the GetTransactions method of TransactionService.
func TestGetTransactions(t *testing.T) {
	ctx := context.Background()
	contact := &domain.Contact{ID: contactID, Name: "Ada"}

	t.Run("ReturnsFilteredList", func(t *testing.T) {
		f := newFixture()
		expected := []domain.Transaction{{ID: txID1, ContactID: contactID, Status: domain.TransactionStatusPending}}

		f.contactRepo.On("GetContactByID", ctx, f.executor, contactID).Return(contact, nil).Once()
		f.transactionRepo.On("ListTransactionsByContact", ctx, f.executor, contactID, domain.StatusFilter("Pending")).Return(expected, nil).Once()

		txs, err := f.service.GetTransactions(ctx, contactID, domain.StatusFilter("Pending"))
		require.NoError(t, err)
		assert.Equal(t, expected, txs)
		f.contactRepo.AssertExpectations(t)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("UnknownContact", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("GetContactByID", ctx, f.executor, missingContactID).Return(nil, util.ErrNotFound).Once()

		_, err := f.service.GetTransactions(ctx, missingContactID, domain.StatusFilterAll)
		assert.True(t, util.IsError(err, util.ErrContactNotFound))
		f.transactionRepo.AssertNotCalled(t, "ListTransactionsByContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedContactID", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.GetTransactions(ctx, "c-1", domain.StatusFilterAll)
		assert.True(t, util.IsError(err, util.ErrContactNotFound))
		f.contactRepo.AssertNotCalled(t, "GetContactByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidFilter", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.GetTransactions(ctx, contactID, domain.StatusFilter("Archived"))
		assert.True(t, util.IsError(err, util.ErrInvalidStatus))
		f.contactRepo.AssertNotCalled(t, "GetContactByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("GetContactByID", ctx, f.executor, contactID).Return(contact, nil).Once()
		f.transactionRepo.On("ListTransactionsByContact", ctx, f.executor, contactID, domain.StatusFilterAll).Return(nil, errors.New("db down")).Once()

		_, err := f.service.GetTransactions(ctx, contactID, domain.StatusFilterAll)
		assert.ErrorContains(t, err, "db down")
	})
}

// TestCreateTransaction tests the CreateTransaction method of TransactionService.
func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	contact := &domain.Contact{ID: contactID, Name: "Ada"}

	t.Run("DefaultsStatusAndCurrency", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("GetContactByID", ctx, f.executor, contactID).Return(contact, nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, f.executor, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

		tx, err := f.service.CreateTransaction(ctx, domain.TransactionFields{
			Amount:    decimal.RequireFromString("250.00"),
			ContactID: contactID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)
		assert.Equal(t, "USD", tx.Currency)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateTransaction(ctx, domain.TransactionFields{
			Amount:    decimal.NewFromInt(-5),
			ContactID: contactID,
		})
		assert.True(t, util.IsError(err, util.ErrInvalidInput))
		f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsUnstorableFields", func(t *testing.T) {
		cases := map[string]domain.TransactionFields{
			"TooManyDecimals":  {Amount: decimal.RequireFromString("0.00001"), ContactID: contactID},
			"WouldBeRounded":   {Amount: decimal.RequireFromString("250.123456"), ContactID: contactID},
			"TooLarge":         {Amount: decimal.RequireFromString("10000000000000000"), ContactID: contactID},
			"CurrencyNotISO":   {Amount: decimal.NewFromInt(5), Currency: "dollars", ContactID: contactID},
			"CurrencyNotAlpha": {Amount: decimal.NewFromInt(5), Currency: "U$D", ContactID: contactID},
		}
		for name, fields := range cases {
			t.Run(name, func(t *testing.T) {
				f := newFixture()
				_, err := f.service.CreateTransaction(ctx, fields)
				assert.True(t, util.IsError(err, util.ErrInvalidInput), "got %v", err)
				f.contactRepo.AssertNotCalled(t, "GetContactByID", mock.Anything, mock.Anything, mock.Anything)
				f.transactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("KeepsFourDecimals", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("GetContactByID", ctx, f.executor, contactID).Return(contact, nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, f.executor, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

		tx, err := f.service.CreateTransaction(ctx, domain.TransactionFields{
			Amount:    decimal.RequireFromString("250.1234"),
			Currency:  "eur",
			ContactID: contactID,
		})
		require.NoError(t, err)
		assert.Equal(t, "250.1234", tx.Amount.String())
		assert.Equal(t, "EUR", tx.Currency)
	})

	t.Run("MalformedContactID", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.CreateTransaction(ctx, domain.TransactionFields{
			Amount:    decimal.NewFromInt(5),
			ContactID: "not-a-uuid",
		})
		assert.True(t, util.IsError(err, util.ErrContactNotFound))
		f.contactRepo.AssertNotCalled(t, "GetContactByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownContact", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("GetContactByID", ctx, f.executor, missingContactID).Return(nil, util.ErrNotFound).Once()

		_, err := f.service.CreateTransaction(ctx, domain.TransactionFields{
			Amount:    decimal.NewFromInt(5),
			ContactID: missingContactID,
		})
		assert.True(t, util.IsError(err, util.ErrContactNotFound))
	})
}

// TestSetStatus tests the SetStatus method of TransactionService.
func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsWhenEveryRowUpdated", func(t *testing.T) {
		f := newFixture()
		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(sql.ErrTxDone).Maybe()
		f.transactionRepo.On("UpdateTransactionStatus", ctx, mock.Anything, []string{txID1, txID2}, domain.TransactionStatusFailed).Return(int64(2), nil).Once()

		updated, err := f.service.SetStatus(ctx, []string{txID1, txID2, txID1}, domain.TransactionStatusFailed)
		require.NoError(t, err)
		assert.Equal(t, 2, updated)
		f.txController.AssertExpectations(t)
		f.transactionRepo.AssertExpectations(t)
	})

	t.Run("RollsBackOnMissingRows", func(t *testing.T) {
		f := newFixture()
		f.txController.On("Rollback").Return(nil).Once()
		f.transactionRepo.On("UpdateTransactionStatus", ctx, mock.Anything, []string{txID1, txID9}, domain.TransactionStatusCompleted).Return(int64(1), nil).Once()

		_, err := f.service.SetStatus(ctx, []string{txID1, txID9}, domain.TransactionStatusCompleted)
		assert.True(t, util.IsError(err, util.ErrTransactionNotFound))
		f.txController.AssertNotCalled(t, "Commit")
		f.txController.AssertExpectations(t)
	})

	t.Run("EmptySelection", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.SetStatus(ctx, []string{" "}, domain.TransactionStatusCompleted)
		assert.ErrorIs(t, err, util.ErrEmptySelection)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.SetStatus(ctx, []string{txID1}, domain.TransactionStatus("Archived"))
		assert.True(t, util.IsError(err, util.ErrInvalidStatus))
	})

	t.Run("RepositoryError", func(t *testing.T) {
		f := newFixture()
		f.txController.On("Rollback").Return(nil).Once()
		f.transactionRepo.On("UpdateTransactionStatus", ctx, mock.Anything, []string{txID1}, domain.TransactionStatusCompleted).Return(int64(0), errors.New("deadlock")).Once()

		_, err := f.service.SetStatus(ctx, []string{txID1}, domain.TransactionStatusCompleted)
		assert.ErrorContains(t, err, "deadlock")
	})

	t.Run("MalformedID", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.SetStatus(ctx, []string{txID1, "foo"}, domain.TransactionStatusFailed)
		assert.True(t, util.IsError(err, util.ErrInvalidInput))
		assert.ErrorContains(t, err, `"foo"`)
		f.txController.AssertNotCalled(t, "Commit")
		f.transactionRepo.AssertNotCalled(t, "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestCreateContact tests the CreateContact method of TransactionService.
func TestCreateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.contactRepo.On("CreateContact", ctx, f.executor, mock.AnythingOfType("*domain.Contact")).Return(nil).Once()

		contact, err := f.service.CreateContact(ctx, "  Ada Lovelace ")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", contact.Name)
	})

	t.Run("BlankName", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateContact(ctx, " ")
		assert.True(t, util.IsError(err, util.ErrInvalidInput))
	})
}
