package ingest

import (
	"context"
	"fmt"
	"strings"

	"envio-courier-tracking/internal/apperr"
	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
)

type driverStore interface {
	UpsertLocation(ctx context.Context, loc domain.DriverLocation) error
	MarkOffline(ctx context.Context, driverID string) (bool, error)
}

type timelineStore interface {
	Append(ctx context.Context, orderID string, upd domain.TimelineUpdate) error
}

// Service validates and persists incoming tracking writes.
type Service struct {
	drivers  driverStore
	timeline timelineStore
	logger   logx.Logger
}

func NewService(drivers driverStore, timeline timelineStore, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{drivers: drivers, timeline: timeline, logger: logger}
}

// RecordLocation stores a courier position report. An offline report marks
// the courier offline instead of moving the pin.
func (s *Service) RecordLocation(ctx context.Context, loc domain.DriverLocation) error {
	if strings.TrimSpace(loc.DriverID) == "" {
		return fmt.Errorf("%w: driver id is required", apperr.Invalid)
	}
	if loc.Status != "" && !loc.Status.Valid() {
		return fmt.Errorf("%w: unknown driver status %q", apperr.Invalid, loc.Status)
	}
	if loc.Location.Lat < -90 || loc.Location.Lat > 90 ||
		loc.Location.Lng < -180 || loc.Location.Lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", apperr.Invalid)
	}

	if loc.Status == domain.DriverOffline {
		marked, err := s.drivers.MarkOffline(ctx, loc.DriverID)
		if err != nil {
			return fmt.Errorf("mark offline: %w", err)
		}
		if !marked {
			s.logger.Debug("offline report for unknown driver",
				logx.String("driver_id", loc.DriverID))
		}
		return nil
	}

	if err := s.drivers.UpsertLocation(ctx, loc); err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	return nil
}

// RecordTimelineUpdate appends a progress entry to an order's timeline.
func (s *Service) RecordTimelineUpdate(ctx context.Context, orderID string, upd domain.TimelineUpdate) error {
	if strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("%w: order id is required", apperr.Invalid)
	}
	if !upd.Status.Valid() {
		return fmt.Errorf("%w: unknown shipment status %q", apperr.Invalid, upd.Status)
	}
	if upd.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", apperr.Invalid)
	}

	if err := s.timeline.Append(ctx, orderID, upd); err != nil {
		return fmt.Errorf("append timeline: %w", err)
	}
	return nil
}
