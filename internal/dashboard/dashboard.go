// Package dashboard implements the transaction dashboard of a contact: a status
// filtered list kept in sync with the record store, row selection, creating
// transactions and moving selected transactions to a terminal status.
//
// Every mutation follows the same sequence: write, notify, refresh. The refresh
// is issued only after the write has resolved, and it re-runs the list query
// instead of patching rows locally.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/util"
)

// MutationService writes transactions to the record store.
type MutationService interface {
	UpdateStatus(ctx context.Context, ids []string, status domain.TransactionStatus) error
	CreateTransaction(ctx context.Context, fields domain.TransactionFields) (string, error)
}

// WorkflowState is the state of a mutation workflow.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateSubmitting WorkflowState = "submitting"
)

// Dashboard is one contact's transaction dashboard.
// Its methods are safe for concurrent use. Remote calls are made without
// holding the internal lock, so overlapping workflows are possible; the list
// then reflects whichever refresh was issued last.
type Dashboard struct {
	binding   *Binding
	mutations MutationService
	changes   ChangeNotifier
	notifier  Notifier
	logger    *slog.Logger
	currency  string

	mu        sync.Mutex
	contactID string
	filter    domain.StatusFilter
	amount    string
	selection Selection
	creating  int
	updating  int
}

// Option customizes a Dashboard.
type Option func(*Dashboard)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) { d.logger = logger }
}

// WithChangeNotifier sets where created records are announced.
func WithChangeNotifier(changes ChangeNotifier) Option {
	return func(d *Dashboard) { d.changes = changes }
}

// WithCurrency sets the currency used to display amounts whose record has none.
func WithCurrency(code string) Option {
	return func(d *Dashboard) { d.currency = code }
}

// New creates a dashboard for contactID. Call Mount to run the first query.
func New(contactID string, query QueryService, mutations MutationService, notifier Notifier, opts ...Option) *Dashboard {
	d := &Dashboard{
		mutations: mutations,
		notifier:  notifier,
		logger:    util.DiscardLogger(),
		currency:  "USD",
		contactID: contactID,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.binding = NewBinding(query, notifier, d.logger)
	return d
}

// Mount runs the initial query.
func (d *Dashboard) Mount(ctx context.Context) {
	d.binding.SetParams(ctx, d.params())
}

// Refresh re-runs the current query.
func (d *Dashboard) Refresh(ctx context.Context) {
	d.binding.Invalidate(ctx)
}

// Watch re-runs the query whenever another publisher announces changed records on bus.
func (d *Dashboard) Watch(bus *ChangeBus) (stop func()) {
	return bus.Subscribe(d, func(ctx context.Context, ids []string) {
		d.logger.Debug("Records changed elsewhere, refreshing", "ids", ids)
		d.Refresh(ctx)
	})
}

// ContactID returns the parent record id.
func (d *Dashboard) ContactID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.contactID
}

// SetContactID switches the dashboard to another parent record.
func (d *Dashboard) SetContactID(ctx context.Context, contactID string) {
	d.mu.Lock()
	d.contactID = contactID
	d.mu.Unlock()
	d.binding.SetParams(ctx, d.params())
}

// StatusFilter returns the current filter.
func (d *Dashboard) StatusFilter() domain.StatusFilter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter
}

// SetStatusFilter changes the filter; the list is re-queried when it differs.
func (d *Dashboard) SetStatusFilter(ctx context.Context, filter domain.StatusFilter) {
	d.mu.Lock()
	d.filter = filter
	d.mu.Unlock()
	d.binding.SetParams(ctx, d.params())
}

// Amount returns the raw amount input.
func (d *Dashboard) Amount() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.amount
}

// SetAmount stores the raw amount input. It is validated by Create.
func (d *Dashboard) SetAmount(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.amount = raw
}

// SetSelection replaces the selected row ids.
func (d *Dashboard) SetSelection(ids []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection.Set(ids)
}

// SelectedIDs returns the selected row ids in selection order.
func (d *Dashboard) SelectedIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection.IDs()
}

// Result returns the latest query result envelope.
func (d *Dashboard) Result() Result {
	return d.binding.Result()
}

// Transactions returns the rows of the latest successful query, or nothing
// while the list is in an error state.
func (d *Dashboard) Transactions() []domain.Transaction {
	res := d.binding.Result()
	if res.Err != nil || res.Data == nil {
		return []domain.Transaction{}
	}
	return res.Data
}

// Err returns the error of the latest query, if it failed.
func (d *Dashboard) Err() error {
	return d.binding.Result().Err
}

// HasTransactions reports whether there is anything to list.
func (d *Dashboard) HasTransactions() bool {
	return d.binding.HasTransactions()
}

// HasSelectedRows reports whether any row is selected.
func (d *Dashboard) HasSelectedRows() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection.CanBulkAction()
}

// BulkActionsDisabled reports whether the mark completed/failed controls are disabled.
func (d *Dashboard) BulkActionsDisabled() bool {
	return !d.HasSelectedRows()
}

// CreateState reports whether a create request is in flight.
func (d *Dashboard) CreateState() WorkflowState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return stateOf(d.creating)
}

// UpdateState reports whether a bulk status update is in flight.
func (d *Dashboard) UpdateState() WorkflowState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return stateOf(d.updating)
}

// Create validates the amount input and creates a Pending transaction for the
// contact. On success the amount input is cleared, the new record is announced
// and the list is refreshed. On failure all input is kept for a retry.
func (d *Dashboard) Create(ctx context.Context) {
	d.mu.Lock()
	raw := d.amount
	contactID := d.contactID
	d.mu.Unlock()

	amount, err := domain.ParseAmount(raw)
	if err != nil {
		d.logger.Debug("Rejected amount input", "amount", raw, "error", err)
		d.notifier.Notify(TitleValidationError, MsgInvalidAmount, SeverityWarning)
		return
	}

	d.mu.Lock()
	d.creating++
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.creating--
		d.mu.Unlock()
	}()

	id, err := d.mutations.CreateTransaction(ctx, domain.TransactionFields{
		Amount:    amount,
		Status:    domain.TransactionStatusPending,
		ContactID: contactID,
	})
	if err != nil {
		d.logger.Warn("Failed to create transaction", "contact_id", contactID, "error", err)
		d.notifier.Notify(TitleError, util.UserMessage(err, util.GenericErrorMessage), SeverityError)
		return
	}

	d.logger.Info("Transaction created", "transaction_id", id, "contact_id", contactID)
	d.notifier.Notify(TitleSuccess, MsgTransactionCreated, SeveritySuccess)

	d.mu.Lock()
	d.amount = ""
	d.mu.Unlock()

	if d.changes != nil {
		d.changes.NotifyRecordChange(WithOrigin(ctx, d), id)
	}
	d.binding.Invalidate(ctx)
}

// MarkCompleted moves the selected transactions to Completed.
func (d *Dashboard) MarkCompleted(ctx context.Context) {
	d.SetStatus(ctx, domain.TransactionStatusCompleted)
}

// MarkFailed moves the selected transactions to Failed.
func (d *Dashboard) MarkFailed(ctx context.Context) {
	d.SetStatus(ctx, domain.TransactionStatusFailed)
}

// SetStatus moves every selected transaction to status, which must be
// Completed or Failed, in a single request. On success the selection is
// cleared and the list is refreshed; on failure the selection is kept.
func (d *Dashboard) SetStatus(ctx context.Context, status domain.TransactionStatus) {
	if !status.Terminal() {
		d.logger.Error("Refusing bulk update to non-terminal status", "status", status)
		d.notifier.Notify(TitleValidationError, fmt.Sprintf("Cannot set status to %s", status), SeverityWarning)
		return
	}

	d.mu.Lock()
	ids := d.selection.IDs()
	if len(ids) == 0 {
		d.mu.Unlock()
		d.logger.Debug("Bulk update ignored, nothing selected", "status", status)
		return
	}
	d.updating++
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.updating--
		d.mu.Unlock()
	}()

	if err := d.mutations.UpdateStatus(ctx, ids, status); err != nil {
		d.logger.Warn("Failed to update transaction status", "count", len(ids), "status", status, "error", err)
		d.notifier.Notify(TitleError, util.UserMessage(err, util.GenericErrorMessage), SeverityError)
		return
	}

	d.logger.Info("Transaction status updated", "count", len(ids), "status", status)
	d.notifier.Notify(TitleSuccess, fmt.Sprintf(MsgStatusUpdatedFmt, status), SeveritySuccess)

	d.mu.Lock()
	d.selection.Clear()
	d.mu.Unlock()

	d.binding.Invalidate(ctx)
}

func (d *Dashboard) params() Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Params{ContactID: d.contactID, Status: d.filter}
}

func stateOf(inFlight int) WorkflowState {
	if inFlight > 0 {
		return StateSubmitting
	}
	return StateIdle
}
