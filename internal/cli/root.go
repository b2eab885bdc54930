// Package cli implements the packctl maintenance commands.
package cli

import (
	"commute-learning-service/internal/app"
	"commute-learning-service/internal/config"
	"commute-learning-service/internal/platform/obs"
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type env struct {
	cfg     *config.Config
	storage *app.Storage
}

// NewRootCmd builds the packctl command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "packctl",
		Short:         "Manage the commute learning catalog and saved routes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := obs.WithRequestID(cmd.Context(), "cli-"+uuid.NewString()[:8])
			cmd.SetContext(ctx)

			storage, err := app.OpenStorage(ctx, cfg)
			if err != nil {
				return err
			}

			e.cfg, e.storage = cfg, storage
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if e.storage == nil {
				return nil
			}
			return e.storage.Close()
		},
	}
	root.SetContext(context.Background())

	root.AddCommand(newMigrateCmd(e))
	root.AddCommand(newSeedCmd(e))
	root.AddCommand(newSelectCmd(e))
	root.AddCommand(newRouteTimeCmd(e))
	root.AddCommand(newRoutesCmd(e))

	return root
}
