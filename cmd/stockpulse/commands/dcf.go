package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/dcf"
	"github.com/stockpulse/backend/internal/external/fmp"
	"github.com/stockpulse/backend/internal/external/yahoo"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// dcfCmd represents the dcf command
var dcfCmd = &cobra.Command{
	Use:   "dcf <TICKER>",
	Short: "Run a DCF valuation for one ticker",
	Long: `Run a single discounted-cash-flow valuation and print the result.

Example:
  go run ./cmd/stockpulse dcf AAPL`,
	Args: cobra.ExactArgs(1),
	RunE: runDCF,
}

func init() {
	rootCmd.AddCommand(dcfCmd)
}

func runDCF(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(strings.TrimSpace(args[0]))
	if ticker == "" {
		return fmt.Errorf("ticker is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	yahooClient := yahoo.NewClient(httputil.New(cfg, log), log, cfg.Yahoo)
	fmpClient := fmp.NewClient(httputil.New(cfg, log), log, cfg.FMP)

	runner := dcf.NewRunner(
		dcf.NewFetcher(yahooClient, log),
		dcf.NewEstimator(fmpClient, log),
		log,
	)

	result := runner.Run(context.Background(), ticker)
	if result.Error != "" {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Printf("Intrinsic value per share for %s: $%.2f\n\n", ticker, *result.IntrinsicValuePerShare)
	fmt.Println(result.Explanation)
	return nil
}
