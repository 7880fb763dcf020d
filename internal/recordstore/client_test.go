package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow-dashboard/internal/api/types"
	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/util"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return New(resty.New(), util.DiscardLogger(), Config{BaseURL: server.URL + "/", Timeout: 2 * time.Second})
}

func TestListTransactions(t *testing.T) {
	var gotStatus []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /contacts/{contactID}/transactions", func(w http.ResponseWriter, r *http.Request) {
		gotStatus = append(gotStatus, r.URL.Query().Get("status"))
		if r.PathValue("contactID") == "empty" {
			_, _ = w.Write([]byte("null"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Transaction{
			{ID: "t-1", ContactID: r.PathValue("contactID"), Amount: decimal.RequireFromString("12.5"), Currency: "EUR", Status: domain.TransactionStatusPending},
		})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("AllStatuses", func(t *testing.T) {
		txs, err := client.ListTransactions(ctx, "c-1", domain.StatusFilterAll)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, "t-1", txs[0].ID)
		assert.Equal(t, "c-1", txs[0].ContactID)
		assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("Filtered", func(t *testing.T) {
		_, err := client.ListTransactions(ctx, "c-1", domain.StatusFilter("Failed"))
		require.NoError(t, err)
	})

	t.Run("NullBody", func(t *testing.T) {
		txs, err := client.ListTransactions(ctx, "empty", domain.StatusFilterAll)
		require.NoError(t, err)
		assert.NotNil(t, txs)
		assert.Empty(t, txs)
	})

	assert.Equal(t, []string{"", "Failed", ""}, gotStatus)
}

func TestMutations(t *testing.T) {
	var created types.CreateTransactionRequest
	var updated types.SetStatusRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&created)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.CreatedResponse{ID: "t-new"})
	})
	mux.HandleFunc("POST /transactions/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&updated)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.SetStatusResponse{Updated: len(updated.TransactionIDs), Status: updated.Status})
	})
	mux.HandleFunc("POST /contacts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.CreatedResponse{ID: "c-new"})
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	id, err := client.CreateTransaction(ctx, domain.TransactionFields{
		Amount:    decimal.RequireFromString("250.00"),
		Status:    domain.TransactionStatusPending,
		ContactID: "c-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "t-new", id)
	assert.Equal(t, "c-1", created.ContactID)
	assert.Equal(t, domain.TransactionStatusPending, created.Status)
	assert.True(t, created.Amount.Equal(decimal.NewFromInt(250)))

	require.NoError(t, client.UpdateStatus(ctx, []string{"t-1", "t-2"}, domain.TransactionStatusCompleted))
	assert.Equal(t, []string{"t-1", "t-2"}, updated.TransactionIDs)
	assert.Equal(t, domain.TransactionStatusCompleted, updated.Status)

	contactID, err := client.CreateContact(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, "c-new", contactID)
}

func TestErrorResponses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(types.ErrorResponse{Message: "One or more transactions were not found"})
	})
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	client := newTestClient(t, mux)
	ctx := context.Background()

	t.Run("MessageFromBody", func(t *testing.T) {
		err := client.UpdateStatus(ctx, []string{"t-404"}, domain.TransactionStatusFailed)
		require.Error(t, err)

		var rerr *Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, http.StatusNotFound, rerr.StatusCode)
		assert.Equal(t, http.MethodPost, rerr.Method)
		assert.Equal(t, "One or more transactions were not found", util.UserMessage(err, "fallback"))
	})

	t.Run("BodyWithoutMessage", func(t *testing.T) {
		_, err := client.CreateTransaction(ctx, domain.TransactionFields{Amount: decimal.NewFromInt(1), ContactID: "c-1"})
		require.Error(t, err)

		var rerr *Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
		assert.Empty(t, rerr.UserMessage())
		assert.Equal(t, "fallback", util.UserMessage(err, "fallback"))
	})

	t.Run("TransportFailure", func(t *testing.T) {
		dead := New(resty.New(), util.DiscardLogger(), Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
		_, err := dead.ListTransactions(ctx, "c-1", domain.StatusFilterAll)
		require.Error(t, err)
		assert.Equal(t, "fallback", util.UserMessage(err, "fallback"))
	})
}
