package feed

import "time"

// EventType is the row-level change class a subscription can ask for.
type EventType string

// List of change event types
const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
)

// Change is one row-level change notification as it left the transport:
// the affected table, the event class, the entity key the row belongs to
// (driver id or order id), the server commit timestamp and the new column
// values.
type Change struct {
	Table string
	Type  EventType
	Key   string
	At    time.Time
	New   map[string]any
}

// Handler consumes a single change notification. For one subscription the
// handler is never invoked concurrently with itself and never after
// Unsubscribe has returned.
type Handler func(Change)

// List of feed tables
const (
	TableDriverLocations = "driver_locations"
	TableShipments       = "shipments"
	TableOrders          = "orders"
	TableTrackingUpdates = "tracking_updates"
)
