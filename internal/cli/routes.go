package cli

import (
	"commute-learning-service/internal/app"
	"commute-learning-service/internal/domain"
	"commute-learning-service/internal/services"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRouteTimeCmd(e *env) *cobra.Command {
	var mode, provider string

	cmd := &cobra.Command{
		Use:   "route-time <origin> <destination>",
		Short: "Look up a commute duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseTravelMode(mode)
			if err != nil {
				return err
			}

			res, err := app.NewResolver(e.cfg, e.storage).Resolve(cmd.Context(), args[0], args[1], m, provider)
			if err != nil {
				return err
			}

			estimate := ""
			if res.IsEstimate {
				estimate = " (estimate)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d min, %.1f km via %s%s\n",
				res.Origin, res.Destination, res.Minutes, float64(res.DistanceMeters)/1000, res.Provider, estimate)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeTransit), "transit, driving or walking")
	cmd.Flags().StringVar(&provider, "provider", "google", "preferred provider (google or kakao)")

	return cmd
}

func newRoutesCmd(e *env) *cobra.Command {
	routes := &cobra.Command{
		Use:   "routes",
		Short: "Manage saved routes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := services.NewSavedRouteStore(e.storage.KV)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tORIGIN\tDESTINATION\tMIN\tUPDATED")
			for _, r := range store.List(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Label, r.Origin, r.Destination, r.LastCalculatedMinutes, r.LastUpdated)
			}
			return tw.Flush()
		},
	}

	var route domain.SavedRoute
	add := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a saved route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if route.Origin == "" || route.Destination == "" {
				return fmt.Errorf("routes add: --origin and --destination are required")
			}

			saved, _ := services.NewSavedRouteStore(e.storage.KV).Upsert(cmd.Context(), route)
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", saved.ID)
			return nil
		},
	}
	add.Flags().StringVar(&route.ID, "id", "", "route id (generated when empty)")
	add.Flags().StringVar(&route.Label, "label", "", "display label")
	add.Flags().StringVar(&route.Origin, "origin", "", "origin")
	add.Flags().StringVar(&route.Destination, "destination", "", "destination")
	add.Flags().IntVar(&route.LastCalculatedMinutes, "minutes", 0, "last known duration")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a saved route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			left := services.NewSavedRouteStore(e.storage.KV).Remove(cmd.Context(), args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%d routes left\n", len(left))
			return nil
		},
	}

	routes.AddCommand(list, add, rm)
	return routes
}
