package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"envio-courier-tracking/internal/domain"
)

// DriverRepo reads and writes driver rows: the users profile, the latest
// upserted driver_locations row and open shipment counts.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

// ListByRole returns user profiles with the given role, ordered by name.
// Locations are not joined here; the snapshot loader composes them.
func (r *DriverRepo) ListByRole(ctx context.Context, role string) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, full_name, email, COALESCE(phone_number,''), COALESCE(vehicle_info,''), status
        FROM users
        WHERE role = $1
        ORDER BY full_name
    `, role)
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.VehicleInfo, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Locations returns the latest known location row per driver.
func (r *DriverRepo) Locations(ctx context.Context) ([]domain.DriverLocation, error) {
	rows, err := r.db.Query(ctx, `
        SELECT driver_id, latitude, longitude, status, updated_at
        FROM driver_locations
    `)
	if err != nil {
		return nil, fmt.Errorf("list driver locations: %w", err)
	}
	defer rows.Close()

	var out []domain.DriverLocation
	for rows.Next() {
		var loc domain.DriverLocation
		if err := rows.Scan(&loc.DriverID, &loc.Location.Lat, &loc.Location.Lng, &loc.Status, &loc.Location.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// OpenDeliveryCounts returns, per driver, the number of shipments not yet in
// a terminal status.
func (r *DriverRepo) OpenDeliveryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT driver_id, COUNT(*)
        FROM shipments
        WHERE driver_id IS NOT NULL
          AND status NOT IN ('delivered','cancelled','failed_delivery')
        GROUP BY driver_id
    `)
	if err != nil {
		return nil, fmt.Errorf("count open deliveries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

// UpsertLocation writes the latest position of a driver. The guard keeps
// updated_at monotonic: a slow replica or a reordered message never moves a
// row backwards.
func (r *DriverRepo) UpsertLocation(ctx context.Context, loc domain.DriverLocation) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO driver_locations (driver_id, latitude, longitude, status, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (driver_id) DO UPDATE
        SET latitude   = EXCLUDED.latitude,
            longitude  = EXCLUDED.longitude,
            status     = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at
        WHERE driver_locations.updated_at < EXCLUDED.updated_at
    `, loc.DriverID, loc.Location.Lat, loc.Location.Lng, loc.Status, loc.Location.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert location for driver %s: %w", loc.DriverID, err)
	}
	return nil
}

// MarkOffline flags a driver's location row as offline on sign-off. Returns
// true if a row was affected.
func (r *DriverRepo) MarkOffline(ctx context.Context, driverID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE driver_locations
        SET status = 'offline', updated_at = now()
        WHERE driver_id = $1
    `, driverID)
	if err != nil {
		return false, fmt.Errorf("mark driver %s offline: %w", driverID, err)
	}
	return ct.RowsAffected() > 0, nil
}
