package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/logger"
)

// testLoggerCmd verifies structured logging output at every level
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Smoke-check the structured logger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.New(cfg)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.WithField("ticker", "AAPL").Info("message with field")
		log.WithFields(map[string]interface{}{
			"wacc":   0.08,
			"growth": 0.05,
		}).Info("message with fields")

		fmt.Println("logger smoke test complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}
