package tracking

import (
	"context"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/feed"
)

// driverSource defines the row-store reads the loader needs for the driver
// snapshot. The join happens in the loader, not in SQL.
type driverSource interface {
	ListByRole(ctx context.Context, role string) ([]domain.Driver, error)
	Locations(ctx context.Context) ([]domain.DriverLocation, error)
	OpenDeliveryCounts(ctx context.Context) (map[string]int, error)
}

// shipmentSource resolves a single shipment projection by its order id.
type shipmentSource interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.Shipment, error)
}

// timelineSource lists tracking history entries, newest first.
type timelineSource interface {
	ListByOrderID(ctx context.Context, orderID string) ([]domain.TimelineUpdate, error)
}

// changeFeed is the change-notification collaborator sessions subscribe to.
type changeFeed interface {
	Subscribe(table string, types []feed.EventType, filter string, h feed.Handler) (*feed.Subscription, error)
}

// counter is the single-method metrics dependency (prometheus.Counter fits).
type counter interface {
	Inc()
}
