package tracking

import (
	"time"

	"envio-courier-tracking/internal/domain"
)

// focusZoom is the map zoom applied when centering on a located entity.
const focusZoom = 15

// View is the derived display projection of the selected entity: map center,
// status badge, ETA. It is recomputed from the entity on demand, never
// stored.
type View struct {
	EntityID    string
	Kind        domain.EntityKind
	Badge       domain.StatusBadge
	HasLocation bool
	Center      domain.GeoPoint
	Zoom        int
	UpdatedAt   time.Time
	ETA         *time.Time
}

// Project computes the View of any tracked entity.
func Project(e domain.TrackedEntity) View {
	v := View{
		EntityID: e.EntityID(),
		Kind:     e.Kind(),
	}
	if e.HasLocation() {
		loc := e.LastLocation()
		v.HasLocation = true
		v.Center = loc.GeoPoint
		v.Zoom = focusZoom
		v.UpdatedAt = loc.UpdatedAt
	}
	switch c := e.(type) {
	case domain.Driver:
		v.Badge = domain.BadgeForDriver(c.Status)
	case domain.Shipment:
		v.Badge = domain.BadgeForShipment(c.Status)
		v.ETA = EstimateShipment(c)
	}
	return v
}
