package main

import (
	"circuit-planner-service/internal/app"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) newHubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hubs",
		Short: "List the hubs in the route catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			catalog, closeCatalog, err := app.OpenCatalog(ctx, c.cfg.Catalog)
			if err != nil {
				return err
			}
			defer closeCatalog()

			hubs, err := catalog.ListHubs(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME")
			for _, h := range hubs {
				fmt.Fprintf(tw, "%s\t%s\n", h.Code, h.Name)
			}
			return tw.Flush()
		},
	}
}
