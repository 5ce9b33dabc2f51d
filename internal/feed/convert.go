package feed

import (
	"time"

	"envio-courier-tracking/internal/domain"
)

// ToTrackingEvent converts a raw change into the typed event the reconciler
// consumes. Returns false for tables that do not describe a tracked entity
// or for rows missing their entity key.
func ToTrackingEvent(ch Change) (domain.TrackingEvent, bool) {
	switch ch.Table {
	case TableDriverLocations:
		return driverLocationEvent(ch)
	case TableShipments, TableOrders:
		return shipmentEvent(ch)
	default:
		return domain.TrackingEvent{}, false
	}
}

func driverLocationEvent(ch Change) (domain.TrackingEvent, bool) {
	ev := domain.TrackingEvent{
		EntityID:  ch.Key,
		Kind:      domain.KindDriver,
		Timestamp: ch.At,
	}

	lat, okLat := floatField(ch.New, "latitude")
	lng, okLng := floatField(ch.New, "longitude")
	at := timeField(ch.New, "updated_at", ch.At)
	if okLat && okLng {
		ev.Location = &domain.Location{
			GeoPoint:  domain.GeoPoint{Lat: lat, Lng: lng},
			UpdatedAt: at,
		}
		ev.Timestamp = at
	}
	if s, ok := stringField(ch.New, "status"); ok {
		ev.Status = &s
	}
	return ev, true
}

func shipmentEvent(ch Change) (domain.TrackingEvent, bool) {
	ev := domain.TrackingEvent{
		EntityID:  ch.Key,
		Kind:      domain.KindShipment,
		Timestamp: timeField(ch.New, "updated_at", ch.At),
	}
	if s, ok := stringField(ch.New, "status"); ok {
		ev.Status = &s
	}
	lat, okLat := floatField(ch.New, "current_lat")
	lng, okLng := floatField(ch.New, "current_lng")
	if okLat && okLng {
		ev.Location = &domain.Location{
			GeoPoint:  domain.GeoPoint{Lat: lat, Lng: lng},
			UpdatedAt: ev.Timestamp,
		}
	}
	return ev, true
}

// ToTimelineUpdate converts a tracking_updates INSERT into a timeline entry.
func ToTimelineUpdate(ch Change) (domain.TimelineUpdate, bool) {
	if ch.Table != TableTrackingUpdates || ch.Type != Insert {
		return domain.TimelineUpdate{}, false
	}
	u := domain.TimelineUpdate{
		Timestamp: timeField(ch.New, "timestamp", ch.At),
	}
	if s, ok := stringField(ch.New, "status"); ok {
		u.Status = domain.ShipmentStatus(s)
	}
	if loc, ok := stringField(ch.New, "location"); ok {
		u.Location = loc
	}
	if d, ok := stringField(ch.New, "description"); ok {
		u.Description = d
	}
	return u, true
}

// JSON numbers decode as float64, but ints show up after manual construction
// in tests, so accept both.
func floatField(row map[string]any, key string) (float64, bool) {
	switch v := row[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringField(row map[string]any, key string) (string, bool) {
	s, ok := row[key].(string)
	return s, ok && s != ""
}

func timeField(row map[string]any, key string, fallback time.Time) time.Time {
	s, ok := row[key].(string)
	if !ok {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
