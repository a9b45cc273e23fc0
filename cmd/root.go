package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dave0/windtower/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "windtower",
	Short: "Locate fixed-wireless towers from spectrum licence data",
	Long: "Retrieves spectrum licence dumps from the regulatory database, decodes their\n" +
		"self-describing fixed-width format, and reports transmitter sites with an\n" +
		"estimated coverage range, as a table, GPX, shapefile, or XLSX.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
