package domain

import "time"

// EntityKind tags the concrete variant behind a TrackedEntity.
type EntityKind string

// List of tracked entity kinds
const (
	KindDriver   EntityKind = "driver"
	KindShipment EntityKind = "shipment"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Location is the last observed position of a tracked entity.
// UpdatedAt is monotonically non-decreasing per entity: an event carrying an
// older timestamp must never overwrite a stored Location.
type Location struct {
	GeoPoint
	UpdatedAt time.Time
}

// TrackedEntity is the capability surface shared by Driver and Shipment.
// Concrete variants are plain structs; the interface exists so that the
// reconciler and the view layer can treat a mixed collection uniformly.
type TrackedEntity interface {
	EntityID() string
	Kind() EntityKind
	HasLocation() bool
	LastLocation() Location
	StatusText() string
}
