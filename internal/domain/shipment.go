package domain

import "time"

// ShipmentStatus represents the status of a shipment.
type ShipmentStatus string

// List of possible shipment statuses
const (
	ShipmentPending        ShipmentStatus = "pending"
	ShipmentProcessing     ShipmentStatus = "processing"
	ShipmentPickedUp       ShipmentStatus = "picked_up"
	ShipmentInTransit      ShipmentStatus = "in_transit"
	ShipmentOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentDelivered      ShipmentStatus = "delivered"
	ShipmentCancelled      ShipmentStatus = "cancelled"
	ShipmentFailedDelivery ShipmentStatus = "failed_delivery"
)

var allowedShipmentStatuses = [...]ShipmentStatus{
	ShipmentPending, ShipmentProcessing, ShipmentPickedUp, ShipmentInTransit,
	ShipmentOutForDelivery, ShipmentDelivered, ShipmentCancelled, ShipmentFailedDelivery,
}

// Valid checks if the ShipmentStatus is one of the known values.
func (s ShipmentStatus) Valid() bool {
	for _, v := range allowedShipmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are expected.
func (s ShipmentStatus) Terminal() bool {
	switch s {
	case ShipmentDelivered, ShipmentCancelled, ShipmentFailedDelivery:
		return true
	default:
		return false
	}
}

// Route describes the planned route of a shipment. EstimatedDuration keeps
// the row-store interval encoding ("HH:MM:SS").
type Route struct {
	StartLocation     string
	EndLocation       string
	EstimatedDuration string
}

// Vehicle describes the vehicle assigned to a shipment.
type Vehicle struct {
	PlateNumber string
	VehicleType string
}

// DriverContact is the slim driver projection shown on a tracking view.
type DriverContact struct {
	Name  string
	Phone string
}

// Shipment is the tracked projection of a single shipment: the order row
// joined with its shipment, route, vehicle and driver rows.
type Shipment struct {
	ID        string
	OrderID   string
	Status    ShipmentStatus
	StartTime *time.Time
	Location  *Location
	Route     *Route
	Vehicle   *Vehicle
	Driver    *DriverContact
	UpdatedAt time.Time
}

// EntityID returns the order id the shipment is tracked by.
func (s Shipment) EntityID() string { return s.OrderID }

// Kind returns KindShipment.
func (s Shipment) Kind() EntityKind { return KindShipment }

// HasLocation reports whether a current location is known.
func (s Shipment) HasLocation() bool { return s.Location != nil }

// LastLocation returns the stored location, or the zero Location when none
// has been observed yet.
func (s Shipment) LastLocation() Location {
	if s.Location == nil {
		return Location{}
	}
	return *s.Location
}

// StatusText returns the raw status string.
func (s Shipment) StatusText() string { return string(s.Status) }

var _ TrackedEntity = Shipment{}
