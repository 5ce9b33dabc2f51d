package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"envio-courier-tracking/internal/domain"
)

// ShipmentRepo reads the denormalized single-shipment projection.
type ShipmentRepo struct{ db *pgxpool.Pool }

// NewShipmentRepo creates a new ShipmentRepo.
func NewShipmentRepo(db *pgxpool.Pool) *ShipmentRepo { return &ShipmentRepo{db: db} }

// GetByOrderID joins the order with its shipment, route, vehicle and driver
// rows. Returns (nil, nil) when the order does not exist.
func (r *ShipmentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Shipment, error) {
	var (
		s domain.Shipment

		startTime  *time.Time
		curLat     *float64
		curLng     *float64
		routeStart *string
		routeEnd   *string
		duration   *string
		plate      *string
		vtype      *string
		drvName    *string
		drvPhone   *string
	)

	err := r.db.QueryRow(ctx, `
        SELECT s.id, o.id, o.status, s.start_time, s.updated_at,
               s.current_lat, s.current_lng,
               r.start_location, r.end_location, r.estimated_duration::text,
               v.plate_number, v.vehicle_type,
               d.full_name, d.phone_number
        FROM orders o
        JOIN shipments s ON s.order_id = o.id
        LEFT JOIN routes   r ON r.id = s.route_id
        LEFT JOIN vehicles v ON v.id = s.vehicle_id
        LEFT JOIN users    d ON d.id = s.driver_id
        WHERE o.id = $1
    `, orderID).Scan(
		&s.ID, &s.OrderID, &s.Status, &startTime, &s.UpdatedAt,
		&curLat, &curLng,
		&routeStart, &routeEnd, &duration,
		&plate, &vtype,
		&drvName, &drvPhone,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment for order %s: %w", orderID, err)
	}

	s.StartTime = startTime
	if curLat != nil && curLng != nil {
		s.Location = &domain.Location{
			GeoPoint:  domain.GeoPoint{Lat: *curLat, Lng: *curLng},
			UpdatedAt: s.UpdatedAt,
		}
	}
	if routeStart != nil || routeEnd != nil || duration != nil {
		s.Route = &domain.Route{
			StartLocation:     deref(routeStart),
			EndLocation:       deref(routeEnd),
			EstimatedDuration: deref(duration),
		}
	}
	if plate != nil || vtype != nil {
		s.Vehicle = &domain.Vehicle{PlateNumber: deref(plate), VehicleType: deref(vtype)}
	}
	if drvName != nil {
		s.Driver = &domain.DriverContact{Name: *drvName, Phone: deref(drvPhone)}
	}
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
