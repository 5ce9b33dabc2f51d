package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"envio-courier-tracking/internal/domain"
)

// TimelineRepo reads and appends tracking_updates rows. The table is
// append-only; rows are never updated.
type TimelineRepo struct{ db *pgxpool.Pool }

// NewTimelineRepo creates a new TimelineRepo.
func NewTimelineRepo(db *pgxpool.Pool) *TimelineRepo { return &TimelineRepo{db: db} }

// ListByOrderID returns the tracking history of an order, newest first.
func (r *TimelineRepo) ListByOrderID(ctx context.Context, orderID string) ([]domain.TimelineUpdate, error) {
	rows, err := r.db.Query(ctx, `
        SELECT timestamp, status, COALESCE(location,''), COALESCE(description,'')
        FROM tracking_updates
        WHERE order_id = $1
        ORDER BY timestamp DESC
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list tracking updates for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var out []domain.TimelineUpdate
	for rows.Next() {
		var u domain.TimelineUpdate
		if err := rows.Scan(&u.Timestamp, &u.Status, &u.Location, &u.Description); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Append inserts one tracking history entry for an order.
func (r *TimelineRepo) Append(ctx context.Context, orderID string, u domain.TimelineUpdate) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tracking_updates (order_id, timestamp, status, location, description)
        VALUES ($1, $2, $3, $4, $5)
    `, orderID, u.Timestamp, u.Status, u.Location, u.Description)
	if err != nil {
		return fmt.Errorf("append tracking update for order %s: %w", orderID, err)
	}
	return nil
}
