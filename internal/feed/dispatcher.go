package feed

import (
	"errors"
	"sync"

	"envio-courier-tracking/internal/logx"
)

// ErrClosed is returned by Subscribe after the dispatcher shut down.
var ErrClosed = errors.New("feed dispatcher closed")

// Dispatcher fans row-level changes out to live subscriptions. The transport
// (kafka consumer) publishes into it; tracking sessions subscribe out of it.
//
// Delivery holds the registration lock, so Unsubscribe blocks until in-flight
// deliveries for that subscription finish: once Unsubscribe returns, the
// handler is never invoked again. The flip side is that handlers must not
// call Subscribe or Unsubscribe from within themselves.
type Dispatcher struct {
	mu     sync.RWMutex
	byTab  map[string][]*Subscription
	closed bool

	logger logx.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger logx.Logger) *Dispatcher {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Dispatcher{
		byTab:  make(map[string][]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a handler for changes of the given types on table.
// An empty filter matches every row; otherwise only changes whose entity key
// equals filter are delivered. Exactly one subscription is opened per call.
func (d *Dispatcher) Subscribe(table string, types []EventType, filter string, h Handler) (*Subscription, error) {
	if table == "" || len(types) == 0 || h == nil {
		return nil, errors.New("feed: table, event types and handler are required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}

	sub := newSubscription(d, table, types, filter, h)
	d.byTab[table] = append(d.byTab[table], sub)

	d.logger.Debug("feed subscription opened",
		logx.String("id", sub.id),
		logx.String("table", table),
		logx.String("filter", filter),
	)
	return sub, nil
}

// Publish delivers ch to every matching subscription, in registration order.
// Events for one entity arrive here in commit order and are delivered in that
// order; nothing is guaranteed across entities.
func (d *Dispatcher) Publish(ch Change) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, sub := range d.byTab[ch.Table] {
		if sub.matches(ch) {
			sub.deliver(ch)
		}
	}
}

// Close drops every subscription and rejects new ones.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.byTab = make(map[string][]*Subscription)
}

func (d *Dispatcher) remove(s *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.byTab[s.table]
	for i, cand := range subs {
		if cand == s {
			d.byTab[s.table] = append(subs[:i:i], subs[i+1:]...)
			d.logger.Debug("feed subscription released", logx.String("id", s.id))
			return
		}
	}
}
