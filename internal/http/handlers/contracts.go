package handlers

import (
	"context"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/ingest"
	"envio-courier-tracking/internal/tracking"
)

type trackingUsecase interface {
	Drivers(ctx context.Context, statusFilter string) ([]domain.Driver, error)
	Shipment(ctx context.Context, orderID string) (domain.Shipment, error)
	Timeline(ctx context.Context, orderID string) ([]domain.TimelineUpdate, error)
	InvalidateOrder(orderID string)
}

// NewTrackingUsecase wires the cached snapshot loader into HTTP handlers.
func NewTrackingUsecase(l *tracking.CachedLoader) trackingUsecase {
	return l
}

type timelineWriter interface {
	RecordTimelineUpdate(ctx context.Context, orderID string, upd domain.TimelineUpdate) error
}

// NewTimelineWriter wires the ingest service into HTTP handlers.
func NewTimelineWriter(svc *ingest.Service) timelineWriter {
	return svc
}

type sessionFactory interface {
	NewDriverSession(ctx context.Context, statusFilter string) (*tracking.Session, error)
	NewShipmentSession(ctx context.Context, orderID string) (*tracking.Session, error)
}

// NewSessionFactory wires the tracking session factory into the ws handler.
func NewSessionFactory(f *tracking.SessionFactory) sessionFactory {
	return f
}
