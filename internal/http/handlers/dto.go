package handlers

import (
	"time"

	"envio-courier-tracking/internal/domain"
)

type badgeDTO struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type locationDTO struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

type driverDTO struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	VehicleInfo    string              `json:"vehicle_info,omitempty"`
	Status         domain.DriverStatus `json:"status"`
	Badge          badgeDTO            `json:"badge"`
	Location       *locationDTO        `json:"location,omitempty"`
	OpenDeliveries int                 `json:"open_deliveries"`
}

type routeDTO struct {
	StartLocation     string `json:"start_location"`
	EndLocation       string `json:"end_location"`
	EstimatedDuration string `json:"estimated_duration,omitempty"`
}

type vehicleDTO struct {
	PlateNumber string `json:"plate_number"`
	VehicleType string `json:"vehicle_type"`
}

type driverContactDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type shipmentDTO struct {
	OrderID   string                `json:"order_id"`
	Status    domain.ShipmentStatus `json:"status"`
	Badge     badgeDTO              `json:"badge"`
	StartTime *time.Time            `json:"start_time,omitempty"`
	ETA       *time.Time            `json:"eta,omitempty"`
	Location  *locationDTO          `json:"location,omitempty"`
	Route     *routeDTO             `json:"route,omitempty"`
	Vehicle   *vehicleDTO           `json:"vehicle,omitempty"`
	Driver    *driverContactDTO     `json:"driver,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type timelineDTO struct {
	Timestamp   time.Time             `json:"timestamp"`
	Status      domain.ShipmentStatus `json:"status"`
	Location    string                `json:"location,omitempty"`
	Description string                `json:"description,omitempty"`
}

type appendTimelineRequest struct {
	Status      domain.ShipmentStatus `json:"status"`
	Location    string                `json:"location,omitempty"`
	Description string                `json:"description,omitempty"`
	Timestamp   *time.Time            `json:"timestamp,omitempty"`
}
