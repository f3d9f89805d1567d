package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

func TestInsertBookingIfUnblockedConcurrent(t *testing.T) {
	ctx := context.Background()
	store := New()

	const n = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.InsertBookingIfUnblocked(ctx, &model.Booking{
				ID: fmt.Sprintf("b-%d", i), PhysicalUnitID: "p-1", Status: model.BookingBooked,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, repository.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	bookings, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestInsertBookingIfUnblockedNonBlocking(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.InsertBookingIfUnblocked(ctx, &model.Booking{ID: "w-1", PhysicalUnitID: "p-1", Status: model.BookingWaitlist}))
	require.NoError(t, store.InsertBookingIfUnblocked(ctx, &model.Booking{ID: "m-1", PhysicalUnitID: "p-1", Status: model.BookingMaintenance}))
	require.NoError(t, store.InsertBookingIfUnblocked(ctx, &model.Booking{ID: "w-2", PhysicalUnitID: "p-1", Status: model.BookingWaitlist}))

	err := store.InsertBookingIfUnblocked(ctx, &model.Booking{ID: "b-1", PhysicalUnitID: "p-1", Status: model.BookingBooked})
	assert.ErrorIs(t, err, repository.ErrConflict)
	require.NoError(t, store.InsertBookingIfUnblocked(ctx, &model.Booking{ID: "b-2", PhysicalUnitID: "p-2", Status: model.BookingBooked}))

	blocked, err := store.BlockingPhysicalUnitIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, blocked, 2)
}
