package store_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	authStore "github.com/MrJamesThe3rd/gastrack/internal/auth/store"
	"github.com/MrJamesThe3rd/gastrack/internal/company"
	companyStore "github.com/MrJamesThe3rd/gastrack/internal/company/store"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder/store"
	"github.com/MrJamesThe3rd/gastrack/internal/database"
)

// openTestDB connects to TEST_DATABASE_URL, migrates it and empties every
// table. Tests skip when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.New(context.Background(), url, database.Pool{MaxOpen: 10, MaxIdle: 2, MaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))

	_, err = db.Exec(`TRUNCATE transactions, deleted_cylinders, cylinders, archived_companies, companies, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func seed(t *testing.T, db *sql.DB) (uuid.UUID, int64) {
	t.Helper()

	ctx := context.Background()

	u := &auth.User{Username: "worker-" + uuid.NewString(), PasswordHash: "x", Role: auth.RoleWorker}
	require.NoError(t, authStore.New(db).CreateUser(ctx, u))

	c := &company.Company{Name: "Acme Gases"}
	require.NoError(t, companyStore.New(db).CreateCompany(ctx, c))

	return u.ID, c.ID
}

func TestStore_ConcurrentDispatchHasOneWinner(t *testing.T) {
	db := openTestDB(t)
	actor, companyID := seed(t, db)
	ctx := context.Background()

	svc := cylinder.NewService(store.New(db))

	added, err := svc.AddBatch(ctx, cylinder.BatchParams{Quantity: 1, GasType: "oxygen", Size: 50})
	require.NoError(t, err)
	require.Equal(t, "CYL1001", added[0].SerialNumber)

	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for range workers {
		wg.Go(func() {
			_, err := svc.Dispatch(ctx, actor, cylinder.DispatchParams{SerialNumbers: []string{"CYL1001"}, CompanyID: companyID})

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
		})
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE cylinder_id = 'CYL1001'`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStore_ArchiveRestoreAndSerials(t *testing.T) {
	db := openTestDB(t)
	actor, _ := seed(t, db)
	ctx := context.Background()

	svc := cylinder.NewService(store.New(db))

	_, err := svc.AddMany(ctx, []cylinder.AddParams{
		{SerialNumber: "CYL1001", GasType: "oxygen", Size: 50},
		{SerialNumber: "CYL1002", GasType: "oxygen", Size: 50},
		{SerialNumber: "CYL1005", GasType: "argon", Size: 10, Status: cylinder.StatusEmpty},
	})
	require.NoError(t, err)

	archived, err := svc.Archive(ctx, actor, "CYL1005")
	require.NoError(t, err)
	assert.Equal(t, cylinder.StatusEmpty, archived.Status)

	next, err := svc.NextSerial(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CYL1006", next)

	_, err = svc.Add(ctx, cylinder.AddParams{SerialNumber: "CYL1005", GasType: "argon", Size: 10})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "archived serials are never reissued")

	restored, err := svc.Restore(ctx, "CYL1005")
	require.NoError(t, err)
	assert.Equal(t, cylinder.StatusEmpty, restored.Status)

	_, err = svc.Restore(ctx, "CYL1005")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestStore_LedgerIsAppendOnly(t *testing.T) {
	db := openTestDB(t)
	actor, companyID := seed(t, db)
	ctx := context.Background()

	svc := cylinder.NewService(store.New(db))

	_, err := svc.Add(ctx, cylinder.AddParams{GasType: "oxygen", Size: 50})
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, actor, cylinder.DispatchParams{SerialNumbers: []string{"CYL1001"}, CompanyID: companyID})
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE transactions SET action = 'refill'`)
	assert.Error(t, err)

	_, err = db.Exec(`DELETE FROM transactions`)
	assert.Error(t, err)
}
