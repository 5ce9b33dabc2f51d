package tracking

import (
	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
)

// Reconciler folds change-feed events into the visible entity collection.
// Apply is pure over the state it is given; the struct only carries the
// logger and counters for dropped events.
type Reconciler struct {
	logger    logx.Logger
	applied   counter
	stale     counter
	malformed counter
}

// NewReconciler creates a Reconciler. Counters may be nil.
func NewReconciler(logger logx.Logger, applied, stale, malformed counter) *Reconciler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Reconciler{logger: logger, applied: applied, stale: stale, malformed: malformed}
}

// Apply merges ev into state, last-write-wins per entity.
//
// The input slice is never mutated. On a merge, the returned slice replaces
// only the addressed element; every other element keeps its identity so that
// downstream diffing stays cheap. Unknown entities, stale timestamps and
// malformed events all leave state unchanged.
func (r *Reconciler) Apply(state []domain.TrackedEntity, ev domain.TrackingEvent) []domain.TrackedEntity {
	if !ev.Addressed() {
		r.logger.Warn("tracking event without entity id dropped", logx.String("kind", string(ev.Kind)))
		inc(r.malformed)
		return state
	}

	idx := -1
	for i, e := range state {
		if e.EntityID() == ev.EntityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// event arrived before the snapshot loaded this entity; no
		// speculative insert
		return state
	}

	merged, ok := merge(state[idx], ev)
	if !ok {
		inc(r.stale)
		return state
	}

	out := make([]domain.TrackedEntity, len(state))
	copy(out, state)
	out[idx] = merged
	inc(r.applied)
	return out
}

func merge(e domain.TrackedEntity, ev domain.TrackingEvent) (domain.TrackedEntity, bool) {
	switch v := e.(type) {
	case domain.Driver:
		return mergeDriver(v, ev)
	case domain.Shipment:
		return mergeShipment(v, ev)
	default:
		return e, false
	}
}

func mergeDriver(d domain.Driver, ev domain.TrackingEvent) (domain.TrackedEntity, bool) {
	// the stored location timestamp doubles as the driver's last-event
	// time, so status-only rows obey the same monotonic check
	if !ev.Timestamp.IsZero() && d.Location != nil && !ev.Timestamp.After(d.Location.UpdatedAt) {
		return d, false
	}
	if ev.Location != nil {
		if d.Location != nil && !ev.Location.UpdatedAt.After(d.Location.UpdatedAt) {
			return d, false
		}
		loc := *ev.Location
		d.Location = &loc
	}
	if ev.Status != nil {
		// permissive: administrative corrections may set any value
		d.Status = domain.DriverStatus(*ev.Status)
	}
	if ev.OpenDeliveries != nil {
		d.OpenDeliveries = *ev.OpenDeliveries
	}
	return d, true
}

func mergeShipment(s domain.Shipment, ev domain.TrackingEvent) (domain.TrackedEntity, bool) {
	if !ev.Timestamp.IsZero() && !s.UpdatedAt.IsZero() && !ev.Timestamp.After(s.UpdatedAt) {
		return s, false
	}
	if ev.Location != nil {
		if s.Location != nil && !ev.Location.UpdatedAt.After(s.Location.UpdatedAt) {
			return s, false
		}
		loc := *ev.Location
		s.Location = &loc
	}
	if ev.Status != nil {
		s.Status = domain.ShipmentStatus(*ev.Status)
	}
	if !ev.Timestamp.IsZero() {
		s.UpdatedAt = ev.Timestamp
	}
	return s, true
}

func inc(c counter) {
	if c != nil {
		c.Inc()
	}
}
