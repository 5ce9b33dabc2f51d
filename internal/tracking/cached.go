package tracking

import (
	"context"

	"envio-courier-tracking/internal/cache"
	"envio-courier-tracking/internal/domain"
)

// CachedLoader puts a short-lived cache in front of the snapshot loader so
// that polling clients do not hammer the row store. Stale reads within the
// TTL are acceptable for display purposes; the change feed keeps live
// sessions current regardless.
type CachedLoader struct {
	next  *Loader
	cache *cache.TTLCache
}

func NewCachedLoader(next *Loader, c *cache.TTLCache) *CachedLoader {
	return &CachedLoader{next: next, cache: c}
}

// Drivers returns the driver snapshot, served from cache when fresh.
func (c *CachedLoader) Drivers(ctx context.Context, statusFilter string) ([]domain.Driver, error) {
	key := cache.Key("drivers", []any{statusFilter}, "")
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.Driver), nil
	}
	drivers, err := c.next.Drivers(ctx, statusFilter)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, drivers)
	return drivers, nil
}

// Shipment returns the shipment projection, served from cache when fresh.
func (c *CachedLoader) Shipment(ctx context.Context, orderID string) (domain.Shipment, error) {
	key := cache.Key("shipments", []any{orderID}, "")
	if v, ok := c.cache.Get(key); ok {
		return v.(domain.Shipment), nil
	}
	s, err := c.next.Shipment(ctx, orderID)
	if err != nil {
		return domain.Shipment{}, err
	}
	c.cache.Set(key, s)
	return s, nil
}

// Timeline returns the tracking history, served from cache when fresh.
func (c *CachedLoader) Timeline(ctx context.Context, orderID string) ([]domain.TimelineUpdate, error) {
	key := cache.Key("tracking_updates", []any{orderID}, "")
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.TimelineUpdate), nil
	}
	updates, err := c.next.Timeline(ctx, orderID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, updates)
	return updates, nil
}

// InvalidateOrder drops the cached projection and timeline of one order,
// used after a write that must be visible on the next read.
func (c *CachedLoader) InvalidateOrder(orderID string) {
	c.cache.Invalidate(cache.Key("shipments", []any{orderID}, ""))
	c.cache.Invalidate(cache.Key("tracking_updates", []any{orderID}, ""))
}
