package handlers

import (
	"time"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/tracking"
)

func badgeToResponse(b domain.StatusBadge) badgeDTO {
	return badgeDTO{Text: b.Text, Color: b.Color}
}

func locationToResponse(loc *domain.Location) *locationDTO {
	if loc == nil {
		return nil
	}
	return &locationDTO{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		UpdatedAt: loc.UpdatedAt,
	}
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		VehicleInfo:    d.VehicleInfo,
		Status:         d.Status,
		Badge:          badgeToResponse(domain.BadgeForDriver(d.Status)),
		Location:       locationToResponse(d.Location),
		OpenDeliveries: d.OpenDeliveries,
	}
}

func driversToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, driverToResponse(d))
	}
	return out
}

func shipmentToResponse(s domain.Shipment) shipmentDTO {
	dto := shipmentDTO{
		OrderID:   s.OrderID,
		Status:    s.Status,
		Badge:     badgeToResponse(domain.BadgeForShipment(s.Status)),
		StartTime: s.StartTime,
		ETA:       tracking.EstimateShipment(s),
		Location:  locationToResponse(s.Location),
		UpdatedAt: s.UpdatedAt,
	}
	if s.Route != nil {
		dto.Route = &routeDTO{
			StartLocation:     s.Route.StartLocation,
			EndLocation:       s.Route.EndLocation,
			EstimatedDuration: s.Route.EstimatedDuration,
		}
	}
	if s.Vehicle != nil {
		dto.Vehicle = &vehicleDTO{
			PlateNumber: s.Vehicle.PlateNumber,
			VehicleType: s.Vehicle.VehicleType,
		}
	}
	if s.Driver != nil {
		dto.Driver = &driverContactDTO{Name: s.Driver.Name, Phone: s.Driver.Phone}
	}
	return dto
}

func timelineToResponse(list []domain.TimelineUpdate) []timelineDTO {
	out := make([]timelineDTO, 0, len(list))
	for _, u := range list {
		out = append(out, timelineDTO{
			Timestamp:   u.Timestamp,
			Status:      u.Status,
			Location:    u.Location,
			Description: u.Description,
		})
	}
	return out
}

func (r appendTimelineRequest) toModel() domain.TimelineUpdate {
	upd := domain.TimelineUpdate{
		Status:      r.Status,
		Location:    r.Location,
		Description: r.Description,
	}
	if r.Timestamp != nil {
		upd.Timestamp = *r.Timestamp
	} else {
		upd.Timestamp = time.Now().UTC()
	}
	return upd
}
