package tracking

import (
	"testing"
	"time"

	"envio-courier-tracking/internal/domain"
)

func TestEstimate_AddsParsedInterval(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	got := Estimate(&start, "02:30:00")
	if got == nil {
		t.Fatal("expected an estimate")
	}
	want := start.Add(2*time.Hour + 30*time.Minute)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestEstimate_MissingInputs(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if got := Estimate(nil, "02:30:00"); got != nil {
		t.Fatalf("nil start should yield nil, got %v", *got)
	}
	if got := Estimate(&start, ""); got != nil {
		t.Fatalf("empty interval should yield nil, got %v", *got)
	}
}

func TestEstimate_UnparseableInterval(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if got := Estimate(&start, "two hours"); got != nil {
		t.Fatalf("unparseable interval should yield nil, got %v", *got)
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Estimate(&start, "00:45:30")
	b := Estimate(&start, "00:45:30")
	if a == nil || b == nil || !a.Equal(*b) {
		t.Fatalf("estimate must be deterministic: %v vs %v", a, b)
	}
}

func TestEstimateShipment(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 5, 2, 18, 15, 0, 0, time.UTC)
	s := domain.Shipment{
		StartTime: &start,
		Route:     &domain.Route{EstimatedDuration: "01:00:00"},
	}
	got := EstimateShipment(s)
	if got == nil || !got.Equal(start.Add(time.Hour)) {
		t.Fatalf("unexpected estimate %v", got)
	}

	if got := EstimateShipment(domain.Shipment{StartTime: &start}); got != nil {
		t.Fatalf("shipment without route should yield nil, got %v", *got)
	}
}
