//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"envio-courier-tracking/internal/domain"
	"envio-courier-tracking/internal/repository"
)

func seedShipmentGraph(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	seedDriver(t, "d1", "Ana")
	_, err := tcPool.Exec(ctx, `INSERT INTO orders (id, status) VALUES ('ord-1','in_transit')`)
	require.NoError(t, err)
	_, err = tcPool.Exec(ctx, `
        INSERT INTO routes (id, start_location, end_location, estimated_duration)
        VALUES ('r1', 'Lima Centro', 'Callao', INTERVAL '2 hours 30 minutes')
    `)
	require.NoError(t, err)
	_, err = tcPool.Exec(ctx, `INSERT INTO vehicles (id, plate_number, vehicle_type) VALUES ('v1','ABC-123','van')`)
	require.NoError(t, err)
	_, err = tcPool.Exec(ctx, `
        INSERT INTO shipments (id, order_id, driver_id, vehicle_id, route_id, start_time, status, current_lat, current_lng)
        VALUES ('s1', 'ord-1', 'd1', 'v1', 'r1', now(), 'in_transit', -12.05, -77.03)
    `)
	require.NoError(t, err)
}

func TestShipmentRepo_GetByOrderID(t *testing.T) {
	truncateAll(t)
	seedShipmentGraph(t)
	repo := repository.NewShipmentRepo(tcPool)

	got, err := repo.GetByOrderID(context.Background(), "ord-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Equal(t, "s1", got.ID)
	require.Equal(t, "ord-1", got.OrderID)
	require.Equal(t, domain.ShipmentInTransit, got.Status)
	require.NotNil(t, got.StartTime)
	require.NotNil(t, got.Location)
	require.Equal(t, -12.05, got.Location.Lat)

	require.NotNil(t, got.Route)
	require.Equal(t, "Lima Centro", got.Route.StartLocation)
	require.Equal(t, "02:30:00", got.Route.EstimatedDuration)

	require.NotNil(t, got.Vehicle)
	require.Equal(t, "ABC-123", got.Vehicle.PlateNumber)

	require.NotNil(t, got.Driver)
	require.Equal(t, "Ana", got.Driver.Name)
}

func TestShipmentRepo_GetByOrderID_NotFound(t *testing.T) {
	truncateAll(t)
	repo := repository.NewShipmentRepo(tcPool)

	got, err := repo.GetByOrderID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestShipmentRepo_GetByOrderID_BareShipment(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	_, err := tcPool.Exec(ctx, `INSERT INTO orders (id, status) VALUES ('ord-2','pending')`)
	require.NoError(t, err)
	_, err = tcPool.Exec(ctx, `INSERT INTO shipments (id, order_id, status) VALUES ('s2','ord-2','pending')`)
	require.NoError(t, err)

	repo := repository.NewShipmentRepo(tcPool)
	got, err := repo.GetByOrderID(ctx, "ord-2")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Nil(t, got.Route)
	require.Nil(t, got.Vehicle)
	require.Nil(t, got.Driver)
	require.Nil(t, got.Location)
	require.Nil(t, got.StartTime)
}

func TestTimelineRepo_AppendAndList(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	_, err := tcPool.Exec(ctx, `INSERT INTO orders (id, status) VALUES ('ord-3','processing')`)
	require.NoError(t, err)

	repo := repository.NewTimelineRepo(tcPool)
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Append(ctx, "ord-3", domain.TimelineUpdate{
		Timestamp: base, Status: domain.ShipmentPickedUp, Location: "Almacén Central", Description: "Recogido",
	}))
	require.NoError(t, repo.Append(ctx, "ord-3", domain.TimelineUpdate{
		Timestamp: base.Add(time.Hour), Status: domain.ShipmentInTransit, Description: "En camino",
	}))

	got, err := repo.ListByOrderID(ctx, "ord-3")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.ShipmentInTransit, got[0].Status, "newest first")
	require.Equal(t, domain.ShipmentPickedUp, got[1].Status)
	require.Equal(t, "Almacén Central", got[1].Location)
}
