package domain

// StatusBadge is the display projection of a status: label plus a color
// token understood by the UI. Labels stay in Spanish, matching the product.
type StatusBadge struct {
	Text  string
	Color string
}

var driverBadges = map[DriverStatus]StatusBadge{
	DriverActive:    {Text: "Activo", Color: "green"},
	DriverInactive:  {Text: "Inactivo", Color: "red"},
	DriverBusy:      {Text: "Ocupado", Color: "yellow"},
	DriverAvailable: {Text: "Disponible", Color: "blue"},
	DriverOffline:   {Text: "Desconectado", Color: "gray"},
}

var shipmentBadges = map[ShipmentStatus]StatusBadge{
	ShipmentPending:        {Text: "Pendiente", Color: "gray"},
	ShipmentProcessing:     {Text: "Procesando", Color: "blue"},
	ShipmentPickedUp:       {Text: "Recogido", Color: "blue"},
	ShipmentInTransit:      {Text: "En Tránsito", Color: "blue"},
	ShipmentOutForDelivery: {Text: "En Reparto", Color: "blue"},
	ShipmentDelivered:      {Text: "Entregado", Color: "green"},
	ShipmentCancelled:      {Text: "Cancelado", Color: "red"},
	ShipmentFailedDelivery: {Text: "Entrega Fallida", Color: "red"},
}

// BadgeForDriver maps a driver status to its display badge. Unknown statuses
// fall back to the raw value on gray, never an error.
func BadgeForDriver(s DriverStatus) StatusBadge {
	if b, ok := driverBadges[s]; ok {
		return b
	}
	return StatusBadge{Text: string(s), Color: "gray"}
}

// BadgeForShipment maps a shipment status to its display badge.
func BadgeForShipment(s ShipmentStatus) StatusBadge {
	if b, ok := shipmentBadges[s]; ok {
		return b
	}
	return StatusBadge{Text: string(s), Color: "gray"}
}
