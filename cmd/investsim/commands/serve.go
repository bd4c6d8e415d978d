package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kelsier27/investsim-backend/internal/adapter/httpapi"
	"github.com/kelsier27/investsim-backend/internal/adapter/repository/memory"
	"github.com/kelsier27/investsim-backend/internal/adapter/repository/postgres"
	"github.com/kelsier27/investsim-backend/internal/domain"
	"github.com/kelsier27/investsim-backend/internal/usecase/loader"
	"github.com/kelsier27/investsim-backend/internal/usecase/market"
	"github.com/kelsier27/investsim-backend/internal/usecase/simulation"
	"github.com/kelsier27/investsim-backend/internal/usecase/valuation"
	"github.com/kelsier27/investsim-backend/pkg/config"
	"github.com/kelsier27/investsim-backend/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                              - Health check
  GET  /api/tickers                         - Supported ticker universe
  GET  /api/prices/latest                   - Latest close per ticker
  GET  /api/investments/{ticker}            - Purchase ledger
  POST /api/investments/{ticker}/generate   - Run the monthly simulation
  GET  /api/investments/{ticker}/report     - Position valuation

Example:
  go run ./cmd/investsim serve
  go run ./cmd/investsim serve --port 8080
  go run ./cmd/investsim serve --demo --prices data/price_history.csv`,
	RunE: runServe,
}

var (
	servePort  string
	demoMode   bool
	demoPrices string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "override the configured port")
	serveCmd.Flags().BoolVar(&demoMode, "demo", false, "run against an in-memory store instead of Postgres")
	serveCmd.Flags().StringVar(&demoPrices, "prices", "", "CSV price file to preload in demo mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
		"demo": demoMode,
	}).Info("Initializing API server")

	var (
		priceRepo      domain.PriceRepository
		investmentRepo domain.InvestmentRepository
	)

	if demoMode {
		store := memory.NewStore()
		priceRepo = memory.NewPriceRepository(store)
		investmentRepo = memory.NewInvestmentRepository(store)

		if demoPrices != "" {
			n, err := loader.NewService(priceRepo).LoadFile(cmd.Context(), demoPrices)
			if err != nil {
				return fmt.Errorf("preload demo prices: %w", err)
			}
			log.WithField("records", n).Info("Preloaded demo price history")
		}
	} else {
		db, err := postgres.NewDB(cfg.Database.ConnectionString())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		log.Info("Connected to database")

		priceRepo = postgres.NewPriceRepository(db)
		investmentRepo = postgres.NewInvestmentRepository(db)
	}

	marketService := market.NewService(priceRepo, cfg.Plan.Tickers)
	simulationService := simulation.NewService(priceRepo, investmentRepo, cfg.Plan.MonthlyContribution)
	valuationService := valuation.NewService(investmentRepo)

	handlers := httpapi.NewHandlers(marketService, simulationService, valuationService, cfg.Plan.Currency, log)
	router := httpapi.NewRouter(handlers, log, cfg.APIToken)
	server := httpapi.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
