package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/MrJamesThe3rd/gastrack/internal/audit"
	auditStore "github.com/MrJamesThe3rd/gastrack/internal/audit/store"
	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	authStore "github.com/MrJamesThe3rd/gastrack/internal/auth/store"
	"github.com/MrJamesThe3rd/gastrack/internal/cache"
	"github.com/MrJamesThe3rd/gastrack/internal/company"
	companyStore "github.com/MrJamesThe3rd/gastrack/internal/company/store"
	"github.com/MrJamesThe3rd/gastrack/internal/config"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	cylinderStore "github.com/MrJamesThe3rd/gastrack/internal/cylinder/store"
	"github.com/MrJamesThe3rd/gastrack/internal/database"
	"github.com/MrJamesThe3rd/gastrack/internal/gasalias"
	aliasStore "github.com/MrJamesThe3rd/gastrack/internal/gasalias/store"
	gasHttp "github.com/MrJamesThe3rd/gastrack/internal/http"
	authHandler "github.com/MrJamesThe3rd/gastrack/internal/http/authn"
	companyHandler "github.com/MrJamesThe3rd/gastrack/internal/http/company"
	cylinderHandler "github.com/MrJamesThe3rd/gastrack/internal/http/cylinder"
	aliasHandler "github.com/MrJamesThe3rd/gastrack/internal/http/gasalias"
	reportHandler "github.com/MrJamesThe3rd/gastrack/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/gastrack/internal/http/transaction"
	"github.com/MrJamesThe3rd/gastrack/internal/importer"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/gastrack/internal/ledger/store"
	"github.com/MrJamesThe3rd/gastrack/internal/metrics"
	"github.com/MrJamesThe3rd/gastrack/internal/report"
	reportStore "github.com/MrJamesThe3rd/gastrack/internal/report/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelConnect()

	db, err := database.New(connectCtx, cfg.ConnectionString(), database.Pool{
		MaxOpen:     cfg.DB.MaxOpenConns,
		MaxIdle:     cfg.DB.MaxIdleConns,
		MaxLifetime: cfg.DB.ConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewDBStatsCollector(db, cfg.DB.Name))

	recorder := metrics.New(registry)

	var reportCache report.Cache = cache.Nop{}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		reportCache = cache.NewRedis(client)
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TTL)

	var (
		authService     = auth.NewService(authStore.New(db), tokens)
		cylinderService = cylinder.NewService(
			cylinderStore.New(db),
			cylinder.WithTimeout(cfg.DB.QueryTimeout),
			cylinder.WithRecorder(recorder),
		)
		companyService = company.NewService(companyStore.New(db), company.WithTimeout(cfg.DB.QueryTimeout))
		ledgerService  = ledger.NewService(ledgerStore.New(db))
		aliasService   = gasalias.NewService(aliasStore.New(db))
		importService  = importer.NewService(cylinderService, aliasService)
		reportService  = report.NewService(reportStore.New(db), ledgerService, reportCache, cfg.Redis.TTL)
	)

	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
	}

	scheduler := cron.New()

	auditor := audit.New(auditStore.New(db), recorder, cfg.DB.QueryTimeout)
	if err := audit.Schedule(scheduler, cfg.Audit.Schedule, auditor); err != nil {
		return fmt.Errorf("scheduling audit: %w", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	router := gasHttp.New(
		gasHttp.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Verifier:       tokens,
			DB:             db,
			Metrics:        registry,
		},
		authHandler.NewHandler(authService),
		cylinderHandler.NewHandler(cylinderService, importService),
		companyHandler.NewHandler(companyService),
		txHandler.NewHandler(ledgerService),
		reportHandler.NewHandler(reportService),
		aliasHandler.NewHandler(aliasService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errs := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
