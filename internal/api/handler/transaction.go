// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"finflow-dashboard/internal/api/types"
	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/service"
	"finflow-dashboard/internal/util" // For custom errors
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// TransactionHandler handles HTTP requests of the record-store API.
type TransactionHandler struct {
	service service.TransactionService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *TransactionHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *TransactionHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrInvalidStatus):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrEmptySelection):
		statusCode = http.StatusBadRequest
		message = "Select at least one transaction"
	case util.IsError(err, util.ErrContactNotFound):
		statusCode = http.StatusNotFound
		message = "Contact not found"
	case util.IsError(err, util.ErrTransactionNotFound):
		statusCode = http.StatusNotFound
		message = "One or more transactions were not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Message: message})
}

// ListTransactions handles the transaction listing request.
// GET /contacts/{contactID}/transactions?status=
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")

	filter, err := domain.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidStatus)
		return
	}

	transactions, err := h.service.GetTransactions(r.Context(), contactID, filter)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles the create transaction request.
// POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.CreateTransaction(r.Context(), domain.TransactionFields{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    req.Status,
		ContactID: req.ContactID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.logger.Info("Transaction created", "transaction_id", transaction.ID, "contact_id", transaction.ContactID)
	h.respondWithJSON(w, http.StatusCreated, types.CreatedResponse{ID: transaction.ID})
}

// SetStatus handles the bulk status update request.
// POST /transactions/status
func (h *TransactionHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req types.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	updated, err := h.service.SetStatus(r.Context(), req.TransactionIDs, req.Status)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.logger.Info("Transaction status updated", "count", updated, "status", req.Status)
	h.respondWithJSON(w, http.StatusOK, types.SetStatusResponse{
		Updated: updated,
		Status:  req.Status,
	})
}

// CreateContact handles the create contact request.
// POST /contacts
func (h *TransactionHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req types.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	contact, err := h.service.CreateContact(r.Context(), req.Name)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, types.CreatedResponse{ID: contact.ID})
}
