package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/gastrack/internal/http/authn"
	"github.com/MrJamesThe3rd/gastrack/internal/http/company"
	"github.com/MrJamesThe3rd/gastrack/internal/http/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gasalias"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/report"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
	"github.com/MrJamesThe3rd/gastrack/internal/http/transaction"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Verifier       gate.Verifier
	DB             Pinger
	Metrics        prometheus.Gatherer
}

func New(
	opts Options,
	authV1 *authn.Handler,
	cylindersV1 *cylinder.Handler,
	companiesV1 *company.Handler,
	transactionsV1 *transaction.Handler,
	reportsV1 *report.Handler,
	gasAliasesV1 *gasalias.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", healthz(opts.DB))

	if opts.Metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authV1.LoginRoutes)

		r.Group(func(r chi.Router) {
			r.Use(gate.Authenticate(opts.Verifier))

			r.Route("/users", authV1.UserRoutes)
			r.Route("/cylinders", cylindersV1.Routes)
			r.Route("/companies", companiesV1.Routes)
			r.Route("/transactions", transactionsV1.Routes)
			r.Route("/reports", reportsV1.Routes)
			r.Route("/gas-aliases", gasAliasesV1.Routes)
		})
	})

	return router
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			respond.Message(w, http.StatusOK, "ok")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.Message(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		respond.Message(w, http.StatusOK, "ok")
	}
}
