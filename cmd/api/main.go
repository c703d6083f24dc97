package main

import (
	"context"
	"net/http"
	"os"

	"github.com/dineflow/dineflow-backend/api/controllers"
	"github.com/dineflow/dineflow-backend/api/routes"
	"github.com/dineflow/dineflow-backend/internal/customers"
	"github.com/dineflow/dineflow-backend/internal/ledger"
	"github.com/dineflow/dineflow-backend/internal/menu"
	"github.com/dineflow/dineflow-backend/internal/numbering"
	"github.com/dineflow/dineflow-backend/internal/orders"
	"github.com/dineflow/dineflow-backend/internal/settlement"
	"github.com/dineflow/dineflow-backend/internal/tables"
	"github.com/dineflow/dineflow-backend/internal/taxmaster"
	"github.com/dineflow/dineflow-backend/pkg/config"
	"github.com/dineflow/dineflow-backend/pkg/db"
	"github.com/dineflow/dineflow-backend/pkg/logger"
	"github.com/dineflow/dineflow-backend/pkg/metrics"
	"github.com/dineflow/dineflow-backend/pkg/migrate"
	"github.com/dineflow/dineflow-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	posMetrics := metrics.NewPOSMetrics(prometheus.DefaultRegisterer)

	gormDB := dbClient.DB()
	orderRepo := orders.NewRepository(gormDB)
	menuRepo := menu.NewRepository(gormDB)
	tableRepo := tables.NewRepository(gormDB)
	customerRepo := customers.NewRepository(gormDB)
	billRepo := settlement.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)

	taxService, err := taxmaster.NewService(taxmaster.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create taxmaster service", err)
		os.Exit(1)
	}
	numberingService, err := numbering.NewService(numbering.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create numbering service", err)
		os.Exit(1)
	}
	ledgerService, err := ledger.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(orderRepo, menuRepo, tableRepo, taxService, numberingService, dbClient, logg, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}
	settlementService, err := settlement.NewService(billRepo, orderRepo, customerRepo, tableRepo, ledgerService, numberingService, dbClient, logg, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			Redis:  redisClient,
			HealthDeps: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
			Orders:     orderService,
			Settlement: settlementService,
			TaxMaster:  taxService,
			Tables:     tableRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
