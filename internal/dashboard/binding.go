package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/util"
)

// QueryService lists a contact's transactions.
type QueryService interface {
	ListTransactions(ctx context.Context, contactID string, status domain.StatusFilter) ([]domain.Transaction, error)
}

// Params key a Binding's query.
type Params struct {
	ContactID string
	Status    domain.StatusFilter
}

// Result is the outcome of the latest query: either Data or Err.
type Result struct {
	Data []domain.Transaction
	Err  error
}

// Binding keeps the result of ListTransactions in sync with its Params.
// Every fetch gets a generation number; a response is stored only if no newer
// fetch was issued meanwhile, so the slot always holds the latest query's outcome.
type Binding struct {
	query    QueryService
	notifier Notifier
	logger   *slog.Logger

	mu         sync.Mutex
	params     Params
	bound      bool
	generation uint64
	result     Result
}

// NewBinding creates an unbound Binding; nothing is fetched until SetParams.
func NewBinding(query QueryService, notifier Notifier, logger *slog.Logger) *Binding {
	return &Binding{
		query:    query,
		notifier: notifier,
		logger:   logger,
	}
}

// SetParams fetches when p differs from the current params or on first use.
func (b *Binding) SetParams(ctx context.Context, p Params) {
	b.mu.Lock()
	if b.bound && b.params == p {
		b.mu.Unlock()
		return
	}
	b.params = p
	b.bound = true
	b.mu.Unlock()

	b.fetch(ctx)
}

// Invalidate re-runs the current query. It is a no-op before the first SetParams.
func (b *Binding) Invalidate(ctx context.Context) {
	b.mu.Lock()
	bound := b.bound
	b.mu.Unlock()
	if !bound {
		return
	}
	b.fetch(ctx)
}

// Params returns the current query parameters.
func (b *Binding) Params() Params {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

// Result returns the latest stored result.
func (b *Binding) Result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	data := b.result.Data
	if data != nil {
		data = append(make([]domain.Transaction, 0, len(data)), data...)
	}
	return Result{Data: data, Err: b.result.Err}
}

// HasTransactions reports whether the latest successful query returned rows.
func (b *Binding) HasTransactions() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result.Err == nil && len(b.result.Data) > 0
}

func (b *Binding) fetch(ctx context.Context) {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	p := b.params
	b.mu.Unlock()

	b.logger.Debug("Querying transactions", "contact_id", p.ContactID, "status", p.Status, "generation", gen)
	data, err := b.query.ListTransactions(ctx, p.ContactID, p.Status)

	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		b.logger.Debug("Dropping stale query result", "generation", gen)
		return
	}
	if err != nil {
		b.result = Result{Err: err}
	} else {
		if data == nil {
			data = []domain.Transaction{}
		}
		b.result = Result{Data: data}
	}
	b.mu.Unlock()

	if err != nil {
		b.logger.Warn("Failed to load transactions", "contact_id", p.ContactID, "error", err)
		b.notifier.Notify(TitleError, util.UserMessage(err, MsgLoadFailed), SeverityError)
	}
}
