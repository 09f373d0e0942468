package cylinder_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
)

func assertCompanyInvariant(t *testing.T, s *memStore) {
	t.Helper()

	for serial, c := range s.cylinders {
		assert.Equal(t, c.Status == cylinder.StatusDispatched, c.CompanyID != nil, "cylinder %s", serial)
	}
}

func TestConcurrentDispatch_OnlyOneWins(t *testing.T) {
	store := newMemStore(1, 2)
	store.put("CYL1001", cylinder.StatusAvailable, nil)
	store.put("CYL1002", cylinder.StatusAvailable, nil)

	svc := cylinder.NewService(store)

	const workers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Dispatch(context.Background(), uuid.New(), cylinder.DispatchParams{
				SerialNumbers: []string{"CYL1002", "CYL1001"},
				CompanyID:     int64(i%2 + 1),
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case apperror.Is(err, apperror.KindStateConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, store.entries, 2)
	assert.Equal(t, *store.cylinders["CYL1001"].CompanyID, *store.cylinders["CYL1002"].CompanyID)
	assertCompanyInvariant(t, store)
}

func TestConcurrentDisjointDispatches_AllSucceed(t *testing.T) {
	store := newMemStore(1)

	for i := range 10 {
		store.put(cylinder.FormatSerial(int64(1001+i)), cylinder.StatusAvailable, nil)
	}

	svc := cylinder.NewService(store)

	var wg sync.WaitGroup

	errs := make([]error, 10)

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = svc.Dispatch(context.Background(), uuid.New(), cylinder.DispatchParams{
				SerialNumbers: []string{cylinder.FormatSerial(int64(1001 + i))},
				CompanyID:     1,
			})
		}()
	}

	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "dispatch %d", i)
	}

	assert.Len(t, store.entries, 10)
	assertCompanyInvariant(t, store)
}

func TestRefill_PartialInputChangesNothing(t *testing.T) {
	store := newMemStore()
	store.put("CYL1001", cylinder.StatusEmpty, nil)
	store.put("CYL1002", cylinder.StatusAvailable, nil)
	store.put("CYL1003", cylinder.StatusEmpty, nil)

	svc := cylinder.NewService(store)

	_, err := svc.StartRefill(context.Background(), uuid.New(), []string{"CYL1001", "CYL1002", "CYL1003"})
	require.Error(t, err)

	assert.Equal(t, cylinder.StatusEmpty, store.cylinders["CYL1001"].Status)
	assert.Equal(t, cylinder.StatusAvailable, store.cylinders["CYL1002"].Status)
	assert.Equal(t, cylinder.StatusEmpty, store.cylinders["CYL1003"].Status)
	assert.Empty(t, store.entries)
}

func TestLifecycle_FullCycle(t *testing.T) {
	store := newMemStore(9)
	svc := cylinder.NewService(store)
	ctx := context.Background()
	actor := uuid.New()

	added, err := svc.AddBatch(ctx, cylinder.BatchParams{Quantity: 2, GasType: "oxygen", Size: 50})
	require.NoError(t, err)
	require.Equal(t, []string{"CYL1001", "CYL1002"}, serialsOf(added))

	_, err = svc.Dispatch(ctx, actor, cylinder.DispatchParams{SerialNumbers: []string{"CYL1001", "CYL1002"}, CompanyID: 9})
	require.NoError(t, err)
	assertCompanyInvariant(t, store)

	_, err = svc.Archive(ctx, actor, "CYL1001")
	require.True(t, apperror.Is(err, apperror.KindStateConflict))

	_, err = svc.Receive(ctx, actor, cylinder.ReceiveParams{
		EmptySerialNumbers:  []string{"CYL1001"},
		FilledSerialNumbers: []string{"CYL1002"},
	})
	require.NoError(t, err)
	assert.Equal(t, cylinder.StatusEmpty, store.cylinders["CYL1001"].Status)
	assert.Equal(t, cylinder.StatusAvailable, store.cylinders["CYL1002"].Status)
	assertCompanyInvariant(t, store)

	_, err = svc.StartRefill(ctx, actor, []string{"CYL1001"})
	require.NoError(t, err)
	require.NoError(t, svc.CompleteRefill(ctx, actor, []string{"CYL1001"}))
	assert.Equal(t, cylinder.StatusAvailable, store.cylinders["CYL1001"].Status)

	// dispatch x2, receive x2, refill x1; completing a refill is not recorded.
	assert.Len(t, store.entries, 5)

	_, err = svc.Archive(ctx, actor, "CYL1002")
	require.NoError(t, err)

	next, err := svc.NextSerial(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CYL1003", next, "archived serials still count")

	_, err = svc.Add(ctx, cylinder.AddParams{SerialNumber: "CYL1002", GasType: "oxygen", Size: 50})
	assert.True(t, apperror.Is(err, apperror.KindValidation), fmt.Sprint(err))

	restored, err := svc.Restore(ctx, "CYL1002")
	require.NoError(t, err)
	assert.Equal(t, cylinder.StatusAvailable, restored.Status)
	assert.Empty(t, store.archived)
}
