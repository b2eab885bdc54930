package cli

import (
	"commute-learning-service/internal/adapters/repositories"
	"commute-learning-service/internal/app"
	"commute-learning-service/internal/services"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// OpenStorage already applied the schema.
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready driver=%s\n", e.storage.Driver)
			return nil
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored catalog with a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = e.cfg.CatalogPath
			}
			if file == "" {
				return fmt.Errorf("seed: --file or CATALOG_PATH is required")
			}

			n, err := repositories.SeedCatalogFromFile(cmd.Context(), e.storage.DB, e.storage.Driver, file)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d packs from %s\n", n, file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog file (.json, .yaml, .yml)")

	return cmd
}

func newSelectCmd(e *env) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Show the packs selected for a time budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *e.cfg
			cfg.CatalogPath = ""

			catalog, err := app.LoadCatalog(cmd.Context(), e.storage, &cfg)
			if err != nil {
				return err
			}

			if minutes <= 0 {
				minutes = e.cfg.DefaultMinutes
			}
			packs := services.SelectPacks(catalog.Packs(), minutes)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMIN\tSCORE\tTAGS\tTITLE")
			for _, p := range packs {
				fmt.Fprintf(tw, "%s\t%d\t%.1f\t%s\t%s\n",
					p.ID, p.EstimatedMinutes, services.EfficiencyScore(p, services.DefaultScoringTags),
					strings.Join(p.Tags, ","), p.Title)
			}
			fmt.Fprintf(tw, "total\t%d/%d\t\t\t\n", services.TotalMinutes(packs), minutes)

			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "time budget in minutes (default DEFAULT_MINUTES)")

	return cmd
}
