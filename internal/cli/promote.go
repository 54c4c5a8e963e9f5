package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inmobiliaria/internal/app"
)

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-posts",
		Short: "Publish scheduled blog posts that are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), setupLogger(cfg.Env), cfg)
			if err != nil {
				return err
			}
			defer application.Stop()

			n, err := application.Blog.PromoteDuePosts(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d posts published\n", n)
			return nil
		},
	}
}
