package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockyard-erp/stockyard/internal/app"
	"github.com/stockyard-erp/stockyard/internal/audit"
	"github.com/stockyard-erp/stockyard/internal/orders"
	"github.com/stockyard-erp/stockyard/internal/platform/tabular"
	"github.com/stockyard-erp/stockyard/internal/products"
	"github.com/stockyard-erp/stockyard/internal/reports"
	"github.com/stockyard-erp/stockyard/internal/sales"
	"github.com/stockyard-erp/stockyard/internal/shared"
	"github.com/stockyard-erp/stockyard/internal/suppliers"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	store, err := tabular.NewStore(cfg.DataDir)
	if err != nil {
		logger.Error("open data dir", slog.Any("error", err))
		os.Exit(1)
	}

	var trail shared.AuditPort
	if cfg.AuditTrail {
		trail = audit.NewTrail(store)
	}
	validate := shared.NewValidator()
	clock := shared.SystemClock{}

	supplierRepo := suppliers.NewRepository(store)
	productRepo := products.NewRepository(store)
	orderRepo := orders.NewRepository(store)
	saleRepo := sales.NewRepository(store)

	supplierSvc := suppliers.NewService(supplierRepo, productRepo, orderRepo, trail, validate, logger)
	productSvc := products.NewService(productRepo, supplierSvc, orderRepo, saleRepo, trail, validate, logger)
	orderSvc := orders.NewService(orderRepo, productSvc, supplierSvc, clock, trail, validate, logger)
	saleSvc := sales.NewService(saleRepo, productSvc, clock, trail, logger)

	generator := reports.NewGenerator(productSvc, orderSvc, saleSvc, clock, cfg.ReportDir, logger)

	menu := newMenu(cfg, supplierSvc, productSvc, orderSvc, saleSvc, generator)
	menu.Run(context.Background(), os.Stdin, os.Stdout)
}
