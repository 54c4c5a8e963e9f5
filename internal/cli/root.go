// Package cli defines the cobra command tree for the inmobiliaria binary.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"inmobiliaria/internal/config"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var flagConfig string

// NewRootCmd creates the root command with the global --config flag.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inmobiliaria",
		Short:         "Real-estate catalog backend",
		Long:          "Serves the property catalog, blog and contact API, and runs bulk imports and blog maintenance from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: $CONFIG_PATH)")

	root.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newPromoteCmd(),
		newAdminTokenCmd(),
		newHashPasswordCmd(),
	)

	return root
}

// loadConfig reads .env when present, then the YAML config and env overrides.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadPath(config.FetchConfigPath(flagConfig))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}

	return log
}
