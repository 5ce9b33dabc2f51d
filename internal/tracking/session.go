package tracking

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/feed"
	"envio-courier-tracking/internal/logx"
)

// Session owns the in-memory tracked-entity collection for one viewing
// session. The snapshot loader populates it, change-feed subscriptions are
// opened exactly once at session start and released exactly once on Close;
// dependency changes go through Refresh, never through resubscription.
type Session struct {
	id           string
	kind         domain.EntityKind
	orderID      string
	statusFilter string

	loader *Loader
	rec    *Reconciler
	logger logx.Logger

	mu       sync.Mutex
	entities []domain.TrackedEntity
	timeline []domain.TimelineUpdate
	selected string
	subs     []*feed.Subscription
	closed   bool

	onChange func()
}

// NewDriverSession loads the driver snapshot and attaches a live
// driver_locations subscription. statusFilter narrows the snapshot
// ("all" or empty keeps everything).
func NewDriverSession(ctx context.Context, loader *Loader, cf changeFeed, rec *Reconciler, logger logx.Logger, statusFilter string) (*Session, error) {
	s := newSession(domain.KindDriver, loader, rec, logger)
	s.statusFilter = statusFilter

	drivers, err := loader.Drivers(ctx, statusFilter)
	if err != nil {
		return nil, err
	}
	s.entities = toEntities(drivers)
	if len(s.entities) > 0 {
		s.selected = s.entities[0].EntityID()
	}

	sub, err := cf.Subscribe(feed.TableDriverLocations, []feed.EventType{feed.Update}, "", s.handleChange)
	if err != nil {
		return nil, err
	}
	s.subs = append(s.subs, sub)

	s.logger.Info("driver tracking session started",
		logx.String("session", s.id),
		logx.Int("drivers", len(s.entities)),
	)
	return s, nil
}

// NewShipmentSession loads the single-shipment snapshot plus its timeline
// and attaches live subscriptions for shipment updates and timeline inserts.
func NewShipmentSession(ctx context.Context, loader *Loader, cf changeFeed, rec *Reconciler, logger logx.Logger, orderID string) (*Session, error) {
	s := newSession(domain.KindShipment, loader, rec, logger)
	s.orderID = orderID

	shipment, err := loader.Shipment(ctx, orderID)
	if err != nil {
		return nil, err
	}
	timeline, err := loader.Timeline(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.entities = []domain.TrackedEntity{shipment}
	s.timeline = timeline
	s.selected = shipment.EntityID()

	shipSub, err := cf.Subscribe(feed.TableShipments, []feed.EventType{feed.Update}, orderID, s.handleChange)
	if err != nil {
		return nil, err
	}
	s.subs = append(s.subs, shipSub)

	tlSub, err := cf.Subscribe(feed.TableTrackingUpdates, []feed.EventType{feed.Insert}, orderID, s.handleTimelineInsert)
	if err != nil {
		shipSub.Unsubscribe()
		return nil, err
	}
	s.subs = append(s.subs, tlSub)

	s.logger.Info("shipment tracking session started",
		logx.String("session", s.id),
		logx.String("order_id", orderID),
	)
	return s, nil
}

func newSession(kind domain.EntityKind, loader *Loader, rec *Reconciler, logger logx.Logger) *Session {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Session{
		id:     uuid.NewString(),
		kind:   kind,
		loader: loader,
		rec:    rec,
		logger: logger,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Kind returns the tracked entity kind of this session.
func (s *Session) Kind() domain.EntityKind { return s.kind }

// SetOnChange registers a callback fired after every accepted state change
// (merge, timeline insert, refresh, selection). The callback runs outside the
// session lock.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Entities returns a copy of the current entity collection.
func (s *Session) Entities() []domain.TrackedEntity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TrackedEntity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Timeline returns a copy of the timeline feed, newest first.
func (s *Session) Timeline() []domain.TimelineUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TimelineUpdate, len(s.timeline))
	copy(out, s.timeline)
	return out
}

// Select marks an entity as the current selection. Returns false when the
// entity is not part of the collection; the selection is left unchanged.
func (s *Session) Select(entityID string) bool {
	s.mu.Lock()
	found := false
	for _, e := range s.entities {
		if e.EntityID() == entityID {
			found = true
			break
		}
	}
	if found {
		s.selected = entityID
	}
	fn := s.onChange
	s.mu.Unlock()

	if found && fn != nil {
		fn()
	}
	return found
}

// SelectedView computes the display projection of the selected entity.
func (s *Session) SelectedView() (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entities {
		if e.EntityID() == s.selected {
			return Project(e), true
		}
	}
	return View{}, false
}

// Refresh re-invokes the snapshot loader and replaces the state wholesale.
// The selection is kept when the entity survives the reload, otherwise it
// falls back to the first entity. Subscriptions are not touched.
func (s *Session) Refresh(ctx context.Context) error {
	var (
		entities []domain.TrackedEntity
		timeline []domain.TimelineUpdate
	)
	switch s.kind {
	case domain.KindDriver:
		drivers, err := s.loader.Drivers(ctx, s.statusFilter)
		if err != nil {
			return err
		}
		entities = toEntities(drivers)
	case domain.KindShipment:
		shipment, err := s.loader.Shipment(ctx, s.orderID)
		if err != nil {
			return err
		}
		tl, err := s.loader.Timeline(ctx, s.orderID)
		if err != nil {
			return err
		}
		entities = []domain.TrackedEntity{shipment}
		timeline = tl
	}

	s.mu.Lock()
	s.entities = entities
	if s.kind == domain.KindShipment {
		s.timeline = timeline
	}
	if !s.selectionAliveLocked() && len(s.entities) > 0 {
		s.selected = s.entities[0].EntityID()
	}
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// Close releases every subscription. Idempotent; once it returns, no further
// feed callbacks touch the session.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	// released outside the session lock: handlers waiting on s.mu must be
	// able to finish before Unsubscribe returns
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	s.logger.Info("tracking session closed", logx.String("session", s.id))
}

func (s *Session) handleChange(ch feed.Change) {
	ev, ok := feed.ToTrackingEvent(ch)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	before := s.entities
	s.entities = s.rec.Apply(s.entities, ev)
	changed := !sameState(before, s.entities)
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn()
	}
}

func (s *Session) handleTimelineInsert(ch feed.Change) {
	u, ok := feed.ToTimelineUpdate(ch)
	if !ok {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timeline = domain.Prepend(s.timeline, u)
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (s *Session) selectionAliveLocked() bool {
	for _, e := range s.entities {
		if e.EntityID() == s.selected {
			return true
		}
	}
	return false
}

// sameState reports whether the reconciler returned the input untouched
// (dropped event). Apply reuses the backing array only in that case.
func sameState(a, b []domain.TrackedEntity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func toEntities(drivers []domain.Driver) []domain.TrackedEntity {
	out := make([]domain.TrackedEntity, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, d)
	}
	return out
}
