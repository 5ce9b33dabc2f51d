package feed

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Subscription is one live (table, filter) registration on the dispatcher.
// It is released with Unsubscribe, which is an idempotent no-op after the
// first call.
type Subscription struct {
	id     string
	table  string
	types  []EventType
	filter string
	h      Handler

	// serializes handler invocations when several publishers overlap
	deliverMu sync.Mutex

	d *Dispatcher
}

// ID returns the unique subscription id.
func (s *Subscription) ID() string { return s.id }

// Table returns the subscribed table.
func (s *Subscription) Table() string { return s.table }

// Unsubscribe releases the subscription. Once it returns, the handler will
// not be invoked again. Safe to call multiple times.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.d.remove(s)
}

func (s *Subscription) deliver(ch Change) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	s.h(ch)
}

func (s *Subscription) matches(ch Change) bool {
	if ch.Table != s.table {
		return false
	}
	if !slices.Contains(s.types, ch.Type) {
		return false
	}
	if s.filter != "" && ch.Key != s.filter {
		return false
	}
	return true
}

func newSubscription(d *Dispatcher, table string, types []EventType, filter string, h Handler) *Subscription {
	return &Subscription{
		id:     uuid.NewString(),
		table:  table,
		types:  slices.Clone(types),
		filter: filter,
		h:      h,
		d:      d,
	}
}
