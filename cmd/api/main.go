package main

import (
	"context"
	"net/http"
	"os"

	"github.com/chethan81/stockmonitor-backend/api/routes"
	authsvc "github.com/chethan81/stockmonitor-backend/internal/auth"
	"github.com/chethan81/stockmonitor-backend/internal/inventory"
	"github.com/chethan81/stockmonitor-backend/internal/ledger"
	"github.com/chethan81/stockmonitor-backend/internal/reports"
	"github.com/chethan81/stockmonitor-backend/internal/wages"
	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/chethan81/stockmonitor-backend/pkg/metrics"
	"github.com/chethan81/stockmonitor-backend/pkg/migrate"
	"github.com/chethan81/stockmonitor-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	storageMetrics := metrics.NewStorageMetrics(prometheus.DefaultRegisterer)

	connector, err := db.NewConnector(cfg.DB, logg, storageMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build storage connector", err)
		os.Exit(1)
	}
	defer func() {
		if err := connector.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	conn, err := connector.Acquire(context.Background())
	if err != nil {
		logg.Error(context.Background(), "no storage candidate reachable", err)
		os.Exit(1)
	}

	if err := db.EnsureSchema(context.Background(), conn, cfg.Admin, cfg.Password); err != nil {
		logg.Error(context.Background(), "failed to initialize schema", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, conn); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	authService, err := authsvc.NewService(connector, cfg.JWT, cfg.Admin)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(connector, storageMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	ledgerService, err := ledger.NewService(connector)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	wagesService, err := wages.NewService(connector)
	if err != nil {
		logg.Error(context.Background(), "failed to create wages service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(connector)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":               cfg.App.Env,
		"addr":              addr,
		"storage_candidate": conn.Candidate(),
		"storage_degraded":  conn.Degraded(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Connector:   connector,
			Redis:       redisClient,
			AuthService: authService,
			Inventory:   inventoryService,
			Ledger:      ledgerService,
			Wages:       wagesService,
			Reports:     reportsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
