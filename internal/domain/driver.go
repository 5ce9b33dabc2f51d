package domain

// DriverStatus represents the status of a courier driver.
type DriverStatus string

// List of possible driver statuses
const (
	DriverActive    DriverStatus = "active"
	DriverInactive  DriverStatus = "inactive"
	DriverBusy      DriverStatus = "busy"
	DriverAvailable DriverStatus = "available"
	DriverOffline   DriverStatus = "offline"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverActive, DriverInactive, DriverBusy, DriverAvailable, DriverOffline,
}

// Valid checks if the DriverStatus is one of the known values.
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Driver is the tracked projection of a courier driver: user row joined with
// the latest driver_locations row and the count of open deliveries.
type Driver struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	VehicleInfo    string
	Status         DriverStatus
	Location       *Location
	OpenDeliveries int
}

// EntityID returns the driver id.
func (d Driver) EntityID() string { return d.ID }

// Kind returns KindDriver.
func (d Driver) Kind() EntityKind { return KindDriver }

// HasLocation reports whether a location event has ever been observed.
func (d Driver) HasLocation() bool { return d.Location != nil }

// LastLocation returns the stored location, or the zero Location when none
// has been observed yet.
func (d Driver) LastLocation() Location {
	if d.Location == nil {
		return Location{}
	}
	return *d.Location
}

// StatusText returns the raw status string.
func (d Driver) StatusText() string { return string(d.Status) }

var _ TrackedEntity = Driver{}

// DriverLocation mirrors one driver_locations row: the latest upserted
// position and feed-reported status of a driver.
type DriverLocation struct {
	DriverID string
	Location Location
	Status   DriverStatus
}
