package tracking

import (
	"regexp"
	"strconv"
	"time"

	"envio-courier-tracking/internal/domain"
)

// reInterval matches the row-store interval encoding "HH:MM:SS".
var reInterval = regexp.MustCompile(`(\d+):(\d+):(\d+)`)

// Estimate projects the delivery instant: start time plus the route's
// estimated duration. Returns nil when either input is absent or the
// interval does not parse.
func Estimate(start *time.Time, estimatedDuration string) *time.Time {
	if start == nil || estimatedDuration == "" {
		return nil
	}
	d, ok := parseInterval(estimatedDuration)
	if !ok {
		return nil
	}
	eta := start.Add(d)
	return &eta
}

// EstimateShipment is Estimate over a shipment's own fields.
func EstimateShipment(s domain.Shipment) *time.Time {
	if s.Route == nil {
		return nil
	}
	return Estimate(s.StartTime, s.Route.EstimatedDuration)
}

func parseInterval(s string) (time.Duration, bool) {
	m := reInterval.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	return time.Duration(h)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second, true
}
