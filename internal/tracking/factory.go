package tracking

import (
	"context"

	"envio-courier-tracking/internal/logx"
)

// SessionFactory opens sessions against a fixed loader and change feed.
type SessionFactory struct {
	loader *Loader
	feed   changeFeed
	rec    *Reconciler
	logger logx.Logger
}

func NewSessionFactory(loader *Loader, feed changeFeed, rec *Reconciler, logger logx.Logger) *SessionFactory {
	return &SessionFactory{loader: loader, feed: feed, rec: rec, logger: logger}
}

func (f *SessionFactory) NewDriverSession(ctx context.Context, statusFilter string) (*Session, error) {
	return NewDriverSession(ctx, f.loader, f.feed, f.rec, f.logger, statusFilter)
}

func (f *SessionFactory) NewShipmentSession(ctx context.Context, orderID string) (*Session, error) {
	return NewShipmentSession(ctx, f.loader, f.feed, f.rec, f.logger, orderID)
}
