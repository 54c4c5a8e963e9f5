package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inmobiliaria/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := setupLogger(cfg.Env)
			log.Info("starting inmobiliaria", slog.String("env", cfg.Env))

			application, err := app.New(cmd.Context(), log, cfg)
			if err != nil {
				return err
			}
			defer application.Stop()

			go application.HTTPServer.MustRun()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

			sign := <-stop
			log.Info("stopping application", slog.String("signal", sign.String()))

			if err := application.HTTPServer.Stop(); err != nil {
				return err
			}

			log.Info("application stopped")
			return nil
		},
	}
}
