package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vizdash/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vizdash",
	Short: "Visualization dashboard backend",
	Long:  "Serves a dataset of analytical records with filter criteria, filtering, aggregations and chart views, and loads records into the backing store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		// --remote reads the dataset from a running backend
		if f := cmd.Flags().Lookup("remote"); f != nil && f.Changed {
			cfg.Store.Driver = config.DriverHTTP
			cfg.Remote.URL = f.Value.String()
		}

		return cfg.Validate(cmd.Name())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
