package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/cache"
	"github.com/MrJamesThe3rd/gastrack/internal/company"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/gasalias"
	gthttp "github.com/MrJamesThe3rd/gastrack/internal/http"
	"github.com/MrJamesThe3rd/gastrack/internal/http/authn"
	companyHandler "github.com/MrJamesThe3rd/gastrack/internal/http/company"
	cylinderHandler "github.com/MrJamesThe3rd/gastrack/internal/http/cylinder"
	aliasHandler "github.com/MrJamesThe3rd/gastrack/internal/http/gasalias"
	reportHandler "github.com/MrJamesThe3rd/gastrack/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/gastrack/internal/http/transaction"
	"github.com/MrJamesThe3rd/gastrack/internal/importer"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
	"github.com/MrJamesThe3rd/gastrack/internal/metrics"
	"github.com/MrJamesThe3rd/gastrack/internal/report"
)

const secret = "0123456789abcdef0123456789abcdef"

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

type fixture struct {
	router    http.Handler
	tokens    *auth.TokenManager
	users     *auth.MockRepository
	cylinders *cylinder.MockRepository
	uow       *cylinder.MockUnitOfWork
	inventory *report.MockInventory
	entries   *ledger.MockRepository
}

func newFixture(t *testing.T, db gthttp.Pinger) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		tokens:    auth.NewTokenManager(secret, "gastrack", time.Hour),
		users:     auth.NewMockRepository(ctrl),
		cylinders: cylinder.NewMockRepository(ctrl),
		uow:       cylinder.NewMockUnitOfWork(ctrl),
		inventory: report.NewMockInventory(ctrl),
		entries:   ledger.NewMockRepository(ctrl),
	}

	reg := prometheus.NewRegistry()

	var (
		authService     = auth.NewService(f.users, f.tokens)
		cylinderService = cylinder.NewService(f.cylinders, cylinder.WithRecorder(metrics.New(reg)))
		companyService  = company.NewService(company.NewMockRepository(ctrl))
		ledgerService   = ledger.NewService(f.entries)
		reportService   = report.NewService(f.inventory, ledgerService, cache.Nop{}, time.Minute)
		aliasService    = gasalias.NewService(gasalias.NewMockRepository(ctrl))
	)

	f.router = gthttp.New(
		gthttp.Options{AllowedOrigins: []string{"*"}, Verifier: f.tokens, DB: db, Metrics: reg},
		authn.NewHandler(authService),
		cylinderHandler.NewHandler(cylinderService, importer.NewService(cylinderService, aliasService)),
		companyHandler.NewHandler(companyService),
		txHandler.NewHandler(ledgerService),
		reportHandler.NewHandler(reportService),
		aliasHandler.NewHandler(aliasService),
	)

	return f
}

func (f *fixture) token(t *testing.T, role auth.Role) string {
	t.Helper()

	return f.tokenFor(t, uuid.New(), role)
}

func (f *fixture) tokenFor(t *testing.T, id uuid.UUID, role auth.Role) string {
	t.Helper()

	raw, _, err := f.tokens.Issue(auth.Identity{UserID: id, Role: role})
	require.NoError(t, err)

	return raw
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHealthz(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		f := newFixture(t, pinger{})
		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "", "").Code)
	})

	t.Run("DatabaseDown", func(t *testing.T) {
		f := newFixture(t, pinger{err: errors.New("connection refused")})
		assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/healthz", "", "").Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, pinger{})

	f.cylinders.EXPECT().Begin(gomock.Any()).Return(f.uow, nil)
	f.uow.EXPECT().MaxSerial(gomock.Any()).Return(int64(1005), true, nil)
	f.uow.EXPECT().Commit().Return(nil)
	f.uow.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodGet, "/api/v1/cylinders/next-serial", f.token(t, auth.RoleWorker), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"serialNumber":"CYL1006"}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cylinder_operations_total{operation="next_serial",result="ok"} 1`)
}

func TestLoginIsPublic(t *testing.T) {
	f := newFixture(t, pinger{})

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	f.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(&auth.User{ID: uuid.New(), Username: "alice", PasswordHash: string(hash), Role: auth.RoleWorker}, nil)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"alice","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string    `json:"token"`
		Role  auth.Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	id, err := f.tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleWorker, id.Role)
	assert.Equal(t, auth.RoleWorker, body.Role)
}

func TestRouteGuards(t *testing.T) {
	f := newFixture(t, pinger{})
	worker := f.token(t, auth.RoleWorker)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "NoToken", method: http.MethodGet, path: "/api/v1/cylinders", want: http.StatusForbidden},
		{name: "BadToken", method: http.MethodGet, path: "/api/v1/cylinders", token: "garbage", want: http.StatusUnauthorized},
		{name: "WorkerArchive", method: http.MethodDelete, path: "/api/v1/cylinders/CYL1001", token: worker, want: http.StatusForbidden},
		{name: "WorkerCreateCompany", method: http.MethodPost, path: "/api/v1/companies", token: worker, want: http.StatusForbidden},
		{name: "WorkerReports", method: http.MethodGet, path: "/api/v1/reports/stats", token: worker, want: http.StatusForbidden},
		{name: "WorkerAllTransactions", method: http.MethodGet, path: "/api/v1/transactions", token: worker, want: http.StatusForbidden},
		{name: "WorkerLearnAlias", method: http.MethodPut, path: "/api/v1/gas-aliases", token: worker, want: http.StatusForbidden},
		{name: "WorkerCreateUser", method: http.MethodPost, path: "/api/v1/users", token: worker, want: http.StatusForbidden},
		{name: "WorkerMovement", method: http.MethodGet, path: "/api/v1/reports/movement", token: worker, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(tt.method, tt.path, tt.token, "{}").Code)
		})
	}
}

func TestDispatchConflictBody(t *testing.T) {
	f := newFixture(t, pinger{})

	f.cylinders.EXPECT().Begin(gomock.Any()).Return(f.uow, nil)
	f.uow.EXPECT().CompanyActive(gomock.Any(), int64(5)).Return(true, nil)
	f.uow.EXPECT().LockCylinders(gomock.Any(), []string{"CYL1001"}).
		Return([]*cylinder.Cylinder{{SerialNumber: "CYL1001", GasType: "oxygen", Size: 50, Status: cylinder.StatusEmpty}}, nil)
	f.uow.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodPost, "/api/v1/cylinders/dispatch", f.token(t, auth.RoleWorker),
		`{"serialNumbers":["CYL1001"],"companyId":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Kind      string `json:"kind"`
		Conflicts []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "state_conflict", body.Kind)
	require.Len(t, body.Conflicts, 1)
	assert.Equal(t, "CYL1001", body.Conflicts[0].ID)
	assert.Equal(t, "empty", body.Conflicts[0].Status)
}

func TestStoreFailureIsRetryable(t *testing.T) {
	f := newFixture(t, pinger{})

	f.cylinders.EXPECT().Begin(gomock.Any()).Return(nil, context.DeadlineExceeded)

	rec := f.do(http.MethodPost, "/api/v1/cylinders/refill", f.token(t, auth.RoleWorker), `{"cylinderIds":["CYL1001"]}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.NotContains(t, rec.Body.String(), "deadline")
}

func TestDispatchUnknownSerials(t *testing.T) {
	f := newFixture(t, pinger{})

	f.cylinders.EXPECT().Begin(gomock.Any()).Return(f.uow, nil)
	f.uow.EXPECT().CompanyActive(gomock.Any(), int64(5)).Return(true, nil)
	f.uow.EXPECT().LockCylinders(gomock.Any(), []string{"CYL1001", "CYL9999"}).
		Return([]*cylinder.Cylinder{{SerialNumber: "CYL1001", GasType: "oxygen", Size: 50, Status: cylinder.StatusAvailable}}, nil)
	f.uow.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodPost, "/api/v1/cylinders/dispatch", f.token(t, auth.RoleWorker),
		`{"serialNumbers":["CYL1001","CYL9999"],"companyId":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Kind    string   `json:"kind"`
		Found   []string `json:"found"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "not_found", body.Kind)
	assert.Equal(t, []string{"CYL1001"}, body.Found)
	assert.Equal(t, []string{"CYL9999"}, body.Missing)
}

func TestArchiveUnknownSerialIsNotFound(t *testing.T) {
	f := newFixture(t, pinger{})

	f.cylinders.EXPECT().Begin(gomock.Any()).Return(f.uow, nil)
	f.uow.EXPECT().LockCylinders(gomock.Any(), []string{"CYL9999"}).Return(nil, nil)
	f.uow.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodDelete, "/api/v1/cylinders/CYL9999", f.token(t, auth.RoleAdmin), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	f := newFixture(t, pinger{})

	latest := time.Date(2026, 5, 3, 8, 0, 0, 0, time.UTC)

	t.Run("Movement", func(t *testing.T) {
		f.entries.EXPECT().Movement(gomock.Any(), ledger.DateRange{}).
			Return(ledger.Movement{UniqueCylinders: 2, Entries: 6, LatestActivity: &latest}, nil)

		rec := f.do(http.MethodGet, "/api/v1/reports/movement", f.token(t, auth.RoleAdmin), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"totalTransactions":6,"uniqueCylinders":2,"latestActivity":"2026-05-03T08:00:00Z"}`, rec.Body.String())
	})

	t.Run("EmptyCylinders", func(t *testing.T) {
		f.inventory.EXPECT().EmptyByGasAndSize(gomock.Any()).Return([]report.EmptyGroup{
			{GasType: "oxygen", Size: 10, Serials: []string{"CYL1001", "CYL1003"}},
		}, nil)

		rec := f.do(http.MethodGet, "/api/v1/reports/empty-cylinders", f.token(t, auth.RoleWorker), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"gasType":"oxygen","size":10,"count":2,"serials":["CYL1001","CYL1003"]}]`, rec.Body.String())
	})

	t.Run("Products", func(t *testing.T) {
		f.inventory.EXPECT().Products(gomock.Any()).Return([]report.Product{{GasType: "argon", Size: 20}}, nil)

		rec := f.do(http.MethodGet, "/api/v1/reports/products", f.token(t, auth.RoleWorker), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"gasType":"argon","size":20}]`, rec.Body.String())
	})

	t.Run("MineScopesToCaller", func(t *testing.T) {
		worker := uuid.New()

		f.entries.EXPECT().CountByUser(gomock.Any(), worker, ledger.DateRange{}).Return([]ledger.ActionCount{
			{Action: ledger.ActionDispatch, Count: 3},
			{Action: ledger.ActionReceiveFilled, Count: 1},
		}, nil)

		rec := f.do(http.MethodGet, "/api/v1/reports/mine", f.tokenFor(t, worker, auth.RoleWorker), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"dispatched":3,"received":1,"refilled":0}`, rec.Body.String())
	})
}
