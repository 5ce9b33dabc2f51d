package domain

import (
	"testing"
	"time"
)

func TestDriverStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range allowedDriverStatuses {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if DriverStatus("parked").Valid() {
		t.Fatal("unknown status should not be valid")
	}
}

func TestShipmentStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range allowedShipmentStatuses {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if ShipmentStatus("shipped").Valid() {
		t.Fatal("unknown status should not be valid")
	}
}

func TestShipmentStatus_Terminal(t *testing.T) {
	t.Parallel()

	terminal := []ShipmentStatus{ShipmentDelivered, ShipmentCancelled, ShipmentFailedDelivery}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("status %q should be terminal", s)
		}
	}
	open := []ShipmentStatus{ShipmentPending, ShipmentProcessing, ShipmentPickedUp, ShipmentInTransit, ShipmentOutForDelivery}
	for _, s := range open {
		if s.Terminal() {
			t.Fatalf("status %q should not be terminal", s)
		}
	}
}

func TestDriver_LocationCapability(t *testing.T) {
	t.Parallel()

	d := Driver{ID: "d1", Status: DriverAvailable}
	if d.HasLocation() {
		t.Fatal("driver without observed location should report HasLocation=false")
	}
	if got := d.LastLocation(); got != (Location{}) {
		t.Fatalf("expected zero location, got %#v", got)
	}

	loc := Location{GeoPoint: GeoPoint{Lat: 1, Lng: 2}, UpdatedAt: time.Unix(100, 0)}
	d.Location = &loc
	if !d.HasLocation() {
		t.Fatal("expected HasLocation=true")
	}
	if got := d.LastLocation(); got != loc {
		t.Fatalf("expected %#v, got %#v", loc, got)
	}
}

func TestPrepend_KeepsPriorEntriesUntouched(t *testing.T) {
	t.Parallel()

	old := []TimelineUpdate{
		{Status: ShipmentInTransit, Description: "en camino"},
		{Status: ShipmentPickedUp, Description: "recogido"},
	}
	head := TimelineUpdate{Status: ShipmentDelivered, Description: "entregado"}

	got := Prepend(old, head)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0] != head {
		t.Fatalf("expected new entry at head, got %#v", got[0])
	}
	if got[1] != old[0] || got[2] != old[1] {
		t.Fatal("prior entries must keep their values and order")
	}
	if len(old) != 2 {
		t.Fatal("input slice must not be mutated")
	}
}

func TestBadges_KnownAndFallback(t *testing.T) {
	t.Parallel()

	if b := BadgeForDriver(DriverBusy); b.Text != "Ocupado" || b.Color != "yellow" {
		t.Fatalf("unexpected badge %#v", b)
	}
	if b := BadgeForShipment(ShipmentDelivered); b.Text != "Entregado" || b.Color != "green" {
		t.Fatalf("unexpected badge %#v", b)
	}
	if b := BadgeForDriver(DriverStatus("???")); b.Text != "???" || b.Color != "gray" {
		t.Fatalf("fallback badge should echo raw status, got %#v", b)
	}
}
