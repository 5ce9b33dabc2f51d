package domain

import "time"

// TrackingEvent is a typed change-feed notification addressed to a single
// tracked entity. Only non-nil fields are merged; the reconciler drops the
// whole event when Timestamp is not newer than the stored one.
type TrackingEvent struct {
	EntityID string
	Kind     EntityKind
	// Timestamp is the server commit time of the change. Used for the
	// monotonic last-write-wins check.
	Timestamp time.Time

	// Changed fields; nil means "not part of this change".
	Location       *Location
	Status         *string
	OpenDeliveries *int
}

// Addressed reports whether the event can be routed to an entity at all.
// Events without an entity id are malformed and dropped by the reconciler.
func (e TrackingEvent) Addressed() bool { return e.EntityID != "" }
