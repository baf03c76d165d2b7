package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chethan81/stockmonitor-backend/api/controllers"
	"github.com/chethan81/stockmonitor-backend/api/middleware"
	authsvc "github.com/chethan81/stockmonitor-backend/internal/auth"
	"github.com/chethan81/stockmonitor-backend/internal/inventory"
	"github.com/chethan81/stockmonitor-backend/internal/ledger"
	"github.com/chethan81/stockmonitor-backend/internal/reports"
	"github.com/chethan81/stockmonitor-backend/internal/wages"
	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/chethan81/stockmonitor-backend/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Connector   *db.Connector
	Redis       *redis.Client
	AuthService authsvc.Service
	Inventory   inventory.Service
	Ledger      ledger.Service
	Wages       wages.Service
	Reports     reports.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	// A nil *redis.Client must stay a nil interface so the limiter
	// falls back to pass-through when redis is disabled.
	var limiterStore middleware.RateLimiterStore
	if d.Redis != nil {
		limiterStore = d.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.Connector, d.Redis, logg))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).
			Post("/login", controllers.Login(d.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(d.Inventory, logg))
			r.Post("/", controllers.CreateItem(d.Inventory, logg))
			r.Get("/{id}", controllers.GetItem(d.Inventory, logg))
			r.Patch("/{id}", controllers.UpdateItem(d.Inventory, logg))
			r.Delete("/{id}", controllers.DeleteItem(d.Inventory, logg))
			r.Post("/{id}/sell", controllers.SellItem(d.Inventory, logg))
		})

		r.Get("/sales", controllers.ListSales(d.Inventory, logg))

		r.Route("/wages", func(r chi.Router) {
			r.Get("/", controllers.ListWages(d.Wages, logg))
			r.Post("/", controllers.RecordWage(d.Wages, logg))
			r.Delete("/{id}", controllers.DeleteWage(d.Wages, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(d.Reports, logg))

		// Investor capital is visible to the seeded admin only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/investments", func(r chi.Router) {
				r.Get("/", controllers.ListInvestments(d.Ledger, logg))
				r.Post("/", controllers.RecordInvestment(d.Ledger, logg))
				r.Get("/{id}", controllers.GetInvestment(d.Ledger, logg))
			})
			r.Route("/investors", func(r chi.Router) {
				r.Get("/", controllers.ListInvestorSummaries(d.Reports, logg))
				r.Get("/{name}/transactions", controllers.ListInvestorInvestments(d.Ledger, logg))
				r.Get("/{name}/ledger", controllers.InvestorLedger(d.Reports, logg))
			})
		})
	})

	return r
}
