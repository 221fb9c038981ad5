package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/api"
	"github.com/stockpulse/backend/internal/api/handlers"
	"github.com/stockpulse/backend/internal/dcf"
	"github.com/stockpulse/backend/internal/external/fmp"
	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET /health                      - Health check
  GET /api/get_dcf                 - DCF valuation
  GET /api/get_stock_news          - Latest stock news
  GET /api/earnings                - Quarterly earnings
  GET /api/stocks/options          - Unusual options activity
  GET /generate_stock_chart        - Price chart HTML

Example:
  go run ./cmd/stockpulse api
  go run ./cmd/stockpulse api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Create HTTP client and external API clients
	httpClient := httputil.New(cfg, log)
	yahooClient := yahoo.NewClient(httpClient, log, cfg.Yahoo)
	fmpClient := fmp.NewClient(httputil.New(cfg, log), log, cfg.FMP)

	// 4. Wire the valuation pipeline
	fetcher := dcf.NewFetcher(yahooClient, log)
	estimator := dcf.NewEstimator(fmpClient, log)
	runner := dcf.NewRunner(fetcher, estimator, log)

	// 5. Create handlers and router
	router := api.NewRouter(
		handlers.NewValuationHandler(runner, log),
		handlers.NewNewsHandler(yahooClient, log),
		handlers.NewEarningsHandler(yahooClient, log),
		handlers.NewChartHandler(yahooClient, log),
		handlers.NewOptionsHandler(yahooClient, log),
		log,
	)

	// 6. Start server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
