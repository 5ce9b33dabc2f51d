package domain

import "time"

// TimelineUpdate is one entry of a shipment's tracking history. The feed is
// append-only: entries are never mutated after insertion and are displayed
// newest first.
type TimelineUpdate struct {
	Timestamp   time.Time
	Status      ShipmentStatus
	Location    string
	Description string
}

// Prepend returns a new slice with u at the head and the existing entries
// untouched, preserving referential identity of prior entries.
func Prepend(updates []TimelineUpdate, u TimelineUpdate) []TimelineUpdate {
	out := make([]TimelineUpdate, 0, len(updates)+1)
	out = append(out, u)
	return append(out, updates...)
}
