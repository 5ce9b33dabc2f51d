package tracking

import (
	"context"
	"errors"
	"fmt"

	"envio-courier-tracking/internal/apperr"
	"envio-courier-tracking/internal/domain"
)

// StatusFilterAll disables driver status filtering.
const StatusFilterAll = "all"

// Loader assembles denormalized tracked-entity snapshots out of 2-3 row-store
// reads. The reads are not transactional across each other; a momentarily
// inconsistent join is accepted and healed by the change feed.
type Loader struct {
	drivers   driverSource
	shipments shipmentSource
	timeline  timelineSource
}

// NewLoader creates a snapshot Loader.
func NewLoader(drivers driverSource, shipments shipmentSource, timeline timelineSource) *Loader {
	return &Loader{drivers: drivers, shipments: shipments, timeline: timeline}
}

// Drivers loads the full driver set with the latest known location and open
// delivery count merged in, ordered by name, optionally filtered by status.
// The feed-reported location status overrides the profile status, the same
// precedence the admin view applies. Any query failure aborts the whole
// load; partial results are discarded.
func (l *Loader) Drivers(ctx context.Context, statusFilter string) ([]domain.Driver, error) {
	drivers, err := l.drivers.ListByRole(ctx, "driver")
	if err != nil {
		return nil, loadErr("list drivers", err)
	}
	locations, err := l.drivers.Locations(ctx)
	if err != nil {
		return nil, loadErr("list driver locations", err)
	}
	counts, err := l.drivers.OpenDeliveryCounts(ctx)
	if err != nil {
		return nil, loadErr("count open deliveries", err)
	}

	byDriver := make(map[string]domain.DriverLocation, len(locations))
	for _, loc := range locations {
		byDriver[loc.DriverID] = loc
	}

	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if loc, ok := byDriver[d.ID]; ok {
			l := loc.Location
			d.Location = &l
			if loc.Status != "" {
				d.Status = loc.Status
			}
		}
		d.OpenDeliveries = counts[d.ID]
		if statusFilter != "" && statusFilter != StatusFilterAll && string(d.Status) != statusFilter {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Shipment loads the single-shipment projection for an order id: the order
// joined with its shipment, route, vehicle and driver rows.
func (l *Loader) Shipment(ctx context.Context, orderID string) (domain.Shipment, error) {
	if orderID == "" {
		return domain.Shipment{}, apperr.Invalid
	}
	s, err := l.shipments.GetByOrderID(ctx, orderID)
	if err != nil {
		return domain.Shipment{}, loadErr(fmt.Sprintf("shipment for order %s", orderID), err)
	}
	if s == nil {
		return domain.Shipment{}, apperr.NotFound
	}
	return *s, nil
}

// Timeline loads the tracking history of an order, newest entry first.
func (l *Loader) Timeline(ctx context.Context, orderID string) ([]domain.TimelineUpdate, error) {
	if orderID == "" {
		return nil, apperr.Invalid
	}
	updates, err := l.timeline.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, loadErr(fmt.Sprintf("timeline for order %s", orderID), err)
	}
	return updates, nil
}

// loadErr folds any query failure into the single aggregate load error the
// caller is expected to surface, keeping the cause in the chain.
func loadErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperr.LoadFailed, op, err)
}

// IsLoadFailure reports whether err is a snapshot load failure.
func IsLoadFailure(err error) bool {
	return errors.Is(err, apperr.LoadFailed)
}
