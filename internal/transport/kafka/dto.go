package kafka

import (
	"strings"
	"time"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/feed"
)

// changeDTO is the CDC envelope the capture pipeline publishes per row change.
type changeDTO struct {
	Table    string         `json:"table"`
	Op       string         `json:"op"`
	Key      string         `json:"key"`
	CommitTS time.Time      `json:"commit_ts"`
	New      map[string]any `json:"new"`
}

func (d changeDTO) toChange() (feed.Change, error) {
	if strings.TrimSpace(d.Table) == "" {
		return feed.Change{}, Permanent("change without table", nil)
	}
	if strings.TrimSpace(d.Key) == "" {
		return feed.Change{}, Permanent("change without key", nil)
	}

	var typ feed.EventType
	switch strings.ToUpper(d.Op) {
	case string(feed.Insert):
		typ = feed.Insert
	case string(feed.Update):
		typ = feed.Update
	default:
		return feed.Change{}, Permanent("unsupported change op "+d.Op, nil)
	}

	at := d.CommitTS
	if at.IsZero() {
		at = time.Now().UTC()
	}

	return feed.Change{
		Table: d.Table,
		Type:  typ,
		Key:   d.Key,
		At:    at,
		New:   d.New,
	}, nil
}

// locationDTO is a raw position report from a courier device.
type locationDTO struct {
	DriverID   string    `json:"driver_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (d locationDTO) toDriverLocation() (domain.DriverLocation, error) {
	if strings.TrimSpace(d.DriverID) == "" {
		return domain.DriverLocation{}, Permanent("location without driver_id", nil)
	}

	at := d.RecordedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	return domain.DriverLocation{
		DriverID: d.DriverID,
		Location: domain.Location{
			GeoPoint:  domain.GeoPoint{Lat: d.Latitude, Lng: d.Longitude},
			UpdatedAt: at,
		},
		Status: domain.DriverStatus(d.Status),
	}, nil
}
