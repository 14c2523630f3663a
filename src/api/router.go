package api

import (
	"banksync-server/src/handlers"
	"banksync-server/src/middleware"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Runner      handlers.SyncRunner
	Accounts    handlers.AccountReader
	JWTSecret   []byte
	CORSOrigins []string
	Gatherer    prometheus.Gatherer
	Logger      *zap.Logger
}

func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.JWTAuthMiddleware(d.JWTSecret)).Group(func(r chi.Router) {
			// Sync
			r.Post("/sync", handlers.SyncAccounts(d.Runner, logger))
			r.Post("/sync/{account_id}", handlers.SyncAccounts(d.Runner, logger))

			// Accounts
			r.With(chimw.Timeout(30 * time.Second)).Group(func(r chi.Router) {
				r.Get("/accounts", handlers.GetAccounts(d.Accounts, logger))
				r.Get("/accounts/{account_id}", handlers.GetAccount(d.Accounts, logger))
				r.Get("/accounts/{account_id}/transactions", handlers.GetAccountTransactions(d.Accounts, logger))
			})
		})

		r.With(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminMiddleware).Group(func(r chi.Router) {
			r.Post("/admin/cache/clear/{cache_name}", handlers.ClearCache(logger))
		})
	})

	return r
}
