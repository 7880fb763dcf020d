package dashboard

import (
	"context"
	"sync"
)

// ChangeNotifier tells a shared record cache that records changed so other
// consumers can re-sync.
type ChangeNotifier interface {
	NotifyRecordChange(ctx context.Context, ids ...string)
}

// ChangeListener reacts to changed record ids.
type ChangeListener func(ctx context.Context, ids []string)

type originKey struct{}

// WithOrigin marks ctx as coming from origin; listeners subscribed with the same
// origin are skipped when a change is published under ctx.
func WithOrigin(ctx context.Context, origin any) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

type subscription struct {
	id     uint64
	origin any
	fn     ChangeListener
}

// ChangeBus is an in-process ChangeNotifier fanning changes out to subscribers.
// Listeners run synchronously in the publishing goroutine.
type ChangeBus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// NewChangeBus returns an empty bus.
func NewChangeBus() *ChangeBus {
	return &ChangeBus{}
}

// Subscribe registers fn and returns a function that removes it.
// origin may be nil.
func (b *ChangeBus) Subscribe(origin any, fn ChangeListener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, origin: origin, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// NotifyRecordChange delivers ids to every subscriber except those sharing the
// origin carried by ctx.
func (b *ChangeBus) NotifyRecordChange(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	origin := ctx.Value(originKey{})

	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		if origin != nil && s.origin == origin {
			continue
		}
		s.fn(ctx, append([]string(nil), ids...))
	}
}
