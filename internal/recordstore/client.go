// Package recordstore is the HTTP client of the record-store API.
// It satisfies the dashboard's query and mutation collaborators.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"finflow-dashboard/internal/api/types"
	"finflow-dashboard/internal/domain"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// Client talks to the record-store API over HTTP.
type Client struct {
	http *resty.Client
}

// Error is returned for every non-2xx response.
type Error struct {
	StatusCode int
	Method     string
	URL        string
	Body       types.ErrorResponse
}

func (e *Error) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
}

// UserMessage is the server-provided message, possibly empty.
func (e *Error) UserMessage() string {
	return e.Body.Message
}

// New configures httpClient for the record-store API at cfg.BaseURL.
func New(httpClient *resty.Client, logger *slog.Logger, cfg Config) *Client {
	client := httpClient.
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "finflow-dashboard").
		SetLogger(restyLogger{logger.With(slog.String("component", "recordstore"))}).
		SetDebug(cfg.Debug)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Client{http: client}
}

// ListTransactions fetches a contact's transactions, optionally filtered by status.
func (c *Client) ListTransactions(ctx context.Context, contactID string, status domain.StatusFilter) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	req := c.http.R().
		SetContext(ctx).
		SetResult(&transactions).
		SetPathParam("contactID", contactID)
	if status != domain.StatusFilterAll {
		req.SetQueryParam("status", string(status))
	}

	res, err := req.Get("/contacts/{contactID}/transactions")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, nil
}

// CreateTransaction stores a new transaction and returns its identifier.
func (c *Client) CreateTransaction(ctx context.Context, fields domain.TransactionFields) (string, error) {
	var created types.CreatedResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(types.CreateTransactionRequest{
			Amount:    fields.Amount,
			Currency:  fields.Currency,
			Status:    fields.Status,
			ContactID: fields.ContactID,
		}).
		SetResult(&created).
		Post("/transactions")
	if err := checkResponse(res, err); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateStatus moves every listed transaction to status in one request.
func (c *Client) UpdateStatus(ctx context.Context, ids []string, status domain.TransactionStatus) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(types.SetStatusRequest{TransactionIDs: ids, Status: status}).
		Post("/transactions/status")
	return checkResponse(res, err)
}

// CreateContact stores a new parent record and returns its identifier.
func (c *Client) CreateContact(ctx context.Context, name string) (string, error) {
	var created types.CreatedResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(types.CreateContactRequest{Name: name}).
		SetResult(&created).
		Post("/contacts")
	if err := checkResponse(res, err); err != nil {
		return "", err
	}
	return created.ID, nil
}

func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("record store request failed: %w", err)
	}
	if !res.IsError() && res.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	rerr := &Error{
		StatusCode: res.StatusCode(),
		Method:     res.Request.Method,
		URL:        res.Request.URL,
	}
	// Bodies that are not the API's JSON envelope leave Message empty.
	_ = json.Unmarshal(res.Body(), &rerr.Body)
	return rerr
}

// restyLogger adapts slog to resty's logger interface.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
