package feed

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversMatchingChanges(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	var got []Change
	sub, err := d.Subscribe(TableDriverLocations, []EventType{Update}, "", func(ch Change) {
		got = append(got, ch)
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	d.Publish(Change{Table: TableDriverLocations, Type: Update, Key: "d1"})
	d.Publish(Change{Table: TableDriverLocations, Type: Insert, Key: "d1"}) // wrong type
	d.Publish(Change{Table: TableShipments, Type: Update, Key: "d1"})      // wrong table

	require.Len(t, got, 1)
	require.Equal(t, "d1", got[0].Key)
}

func TestDispatcher_FilterMatchesEntityKey(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	var got []Change
	sub, err := d.Subscribe(TableTrackingUpdates, []EventType{Insert}, "ord-7", func(ch Change) {
		got = append(got, ch)
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	d.Publish(Change{Table: TableTrackingUpdates, Type: Insert, Key: "ord-7"})
	d.Publish(Change{Table: TableTrackingUpdates, Type: Insert, Key: "ord-8"})

	require.Len(t, got, 1)
	require.Equal(t, "ord-7", got[0].Key)
}

func TestDispatcher_UnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	calls := 0
	sub, err := d.Subscribe(TableShipments, []EventType{Update}, "", func(Change) { calls++ })
	require.NoError(t, err)

	d.Publish(Change{Table: TableShipments, Type: Update, Key: "x"})
	sub.Unsubscribe()
	d.Publish(Change{Table: TableShipments, Type: Update, Key: "x"})

	require.Equal(t, 1, calls)
}

func TestSubscription_UnsubscribeIdempotent(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	sub, err := d.Subscribe(TableShipments, []EventType{Update}, "", func(Change) {})
	require.NoError(t, err)

	require.NotPanics(t, func() {
		sub.Unsubscribe()
		sub.Unsubscribe()
		sub.Unsubscribe()
	})

	var nilSub *Subscription
	require.NotPanics(t, func() { nilSub.Unsubscribe() })
}

func TestDispatcher_SubscriptionsAreIndependent(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	var a, b int
	subA, err := d.Subscribe(TableDriverLocations, []EventType{Update}, "", func(Change) { a++ })
	require.NoError(t, err)
	subB, err := d.Subscribe(TableDriverLocations, []EventType{Update}, "", func(Change) { b++ })
	require.NoError(t, err)
	defer subB.Unsubscribe()

	d.Publish(Change{Table: TableDriverLocations, Type: Update, Key: "d1"})
	subA.Unsubscribe()
	d.Publish(Change{Table: TableDriverLocations, Type: Update, Key: "d1"})

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestDispatcher_RejectsBadArgs(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)

	_, err := d.Subscribe("", []EventType{Update}, "", func(Change) {})
	require.Error(t, err)
	_, err = d.Subscribe(TableShipments, nil, "", func(Change) {})
	require.Error(t, err)
	_, err = d.Subscribe(TableShipments, []EventType{Update}, "", nil)
	require.Error(t, err)
}

func TestDispatcher_ClosedRejectsSubscribe(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	calls := 0
	_, err := d.Subscribe(TableShipments, []EventType{Update}, "", func(Change) { calls++ })
	require.NoError(t, err)

	d.Close()
	d.Publish(Change{Table: TableShipments, Type: Update, Key: "x"})
	require.Zero(t, calls)

	_, err = d.Subscribe(TableShipments, []EventType{Update}, "", func(Change) {})
	require.ErrorIs(t, err, ErrClosed)
}

func TestDispatcher_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)

	var mu sync.Mutex
	delivered := 0
	sub, err := d.Subscribe(TableDriverLocations, []EventType{Update}, "", func(Change) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			d.Publish(Change{Table: TableDriverLocations, Type: Update, Key: "d1"})
		}
	}()

	time.Sleep(time.Millisecond)
	sub.Unsubscribe()

	mu.Lock()
	atRelease := delivered
	mu.Unlock()

	<-done
	mu.Lock()
	after := delivered
	mu.Unlock()

	// nothing may be delivered after Unsubscribe returned
	require.Equal(t, atRelease, after)
}
