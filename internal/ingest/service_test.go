package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"envio-courier-tracking/internal/apperr"
	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/logx"
)

type mockDriverStore struct {
	upsertFn  func(ctx context.Context, loc domain.DriverLocation) error
	offlineFn func(ctx context.Context, driverID string) (bool, error)
}

func (m *mockDriverStore) UpsertLocation(ctx context.Context, loc domain.DriverLocation) error {
	return m.upsertFn(ctx, loc)
}

func (m *mockDriverStore) MarkOffline(ctx context.Context, driverID string) (bool, error) {
	return m.offlineFn(ctx, driverID)
}

type mockTimelineStore struct {
	appendFn func(ctx context.Context, orderID string, upd domain.TimelineUpdate) error
}

func (m *mockTimelineStore) Append(ctx context.Context, orderID string, upd domain.TimelineUpdate) error {
	return m.appendFn(ctx, orderID, upd)
}

func validLocation() domain.DriverLocation {
	return domain.DriverLocation{
		DriverID: "d1",
		Location: domain.Location{
			GeoPoint:  domain.GeoPoint{Lat: -12.05, Lng: -77.03},
			UpdatedAt: time.Now(),
		},
		Status: domain.DriverBusy,
	}
}

func TestRecordLocationUpserts(t *testing.T) {
	var got domain.DriverLocation
	drivers := &mockDriverStore{
		upsertFn: func(_ context.Context, loc domain.DriverLocation) error {
			got = loc
			return nil
		},
	}
	svc := NewService(drivers, nil, logx.Nop())

	require.NoError(t, svc.RecordLocation(context.Background(), validLocation()))
	require.Equal(t, "d1", got.DriverID)
	require.Equal(t, domain.DriverBusy, got.Status)
}

func TestRecordLocationValidation(t *testing.T) {
	drivers := &mockDriverStore{
		upsertFn: func(context.Context, domain.DriverLocation) error {
			t.Fatal("must not reach the store")
			return nil
		},
	}
	svc := NewService(drivers, nil, logx.Nop())

	noID := validLocation()
	noID.DriverID = "  "
	require.ErrorIs(t, svc.RecordLocation(context.Background(), noID), apperr.Invalid)

	badStatus := validLocation()
	badStatus.Status = "teleporting"
	require.ErrorIs(t, svc.RecordLocation(context.Background(), badStatus), apperr.Invalid)

	badLat := validLocation()
	badLat.Location.Lat = 91
	require.ErrorIs(t, svc.RecordLocation(context.Background(), badLat), apperr.Invalid)

	badLng := validLocation()
	badLng.Location.Lng = -181
	require.ErrorIs(t, svc.RecordLocation(context.Background(), badLng), apperr.Invalid)
}

func TestRecordLocationOfflineMarks(t *testing.T) {
	var markedID string
	drivers := &mockDriverStore{
		upsertFn: func(context.Context, domain.DriverLocation) error {
			t.Fatal("offline reports must not upsert")
			return nil
		},
		offlineFn: func(_ context.Context, driverID string) (bool, error) {
			markedID = driverID
			return true, nil
		},
	}
	svc := NewService(drivers, nil, logx.Nop())

	loc := validLocation()
	loc.Status = domain.DriverOffline
	require.NoError(t, svc.RecordLocation(context.Background(), loc))
	require.Equal(t, "d1", markedID)
}

func TestRecordLocationOfflineUnknownDriverIsOK(t *testing.T) {
	drivers := &mockDriverStore{
		offlineFn: func(context.Context, string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(drivers, nil, logx.Nop())

	loc := validLocation()
	loc.Status = domain.DriverOffline
	require.NoError(t, svc.RecordLocation(context.Background(), loc))
}

func TestRecordLocationWrapsStoreError(t *testing.T) {
	boom := errors.New("connection refused")
	drivers := &mockDriverStore{
		upsertFn: func(context.Context, domain.DriverLocation) error {
			return boom
		},
	}
	svc := NewService(drivers, nil, logx.Nop())

	require.ErrorIs(t, svc.RecordLocation(context.Background(), validLocation()), boom)
}

func TestRecordTimelineUpdate(t *testing.T) {
	var gotOrder string
	timeline := &mockTimelineStore{
		appendFn: func(_ context.Context, orderID string, _ domain.TimelineUpdate) error {
			gotOrder = orderID
			return nil
		},
	}
	svc := NewService(nil, timeline, logx.Nop())

	upd := domain.TimelineUpdate{
		Timestamp: time.Now(),
		Status:    domain.ShipmentInTransit,
		Location:  "Av. Arequipa 1234",
	}
	require.NoError(t, svc.RecordTimelineUpdate(context.Background(), "o1", upd))
	require.Equal(t, "o1", gotOrder)

	require.ErrorIs(t, svc.RecordTimelineUpdate(context.Background(), "", upd), apperr.Invalid)

	badStatus := upd
	badStatus.Status = "lost"
	require.ErrorIs(t, svc.RecordTimelineUpdate(context.Background(), "o1", badStatus), apperr.Invalid)

	noTS := upd
	noTS.Timestamp = time.Time{}
	require.ErrorIs(t, svc.RecordTimelineUpdate(context.Background(), "o1", noTS), apperr.Invalid)
}
