package main

import (
	"circuit-planner-service/internal/app"
	"circuit-planner-service/internal/ports"
	"circuit-planner-service/internal/services"

	"github.com/spf13/cobra"
)

type planFlags struct {
	hub          string
	member       string
	class        int
	speed        int
	maxRange     int
	count        int
	networkJSON  string
	noExclusions bool
}

func (c *cli) newPlanCmd() *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build circuits for one hub and aircraft profile",
		Example: `  circuits plan --hub CDG --class 3 --speed 850 --range 9000 --count 3
  circuits plan --hub "Hub CDG - Paris" --class 3 --speed 850 --range 9000 --network-json network.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := services.PlanCircuitsRequest{
				Hub:       f.hub,
				Member:    f.member,
				ClassTier: f.class,
				Speed:     f.speed,
				MaxRange:  f.maxRange,
				Count:     f.count,
			}
			return c.plan(cmd, req, f.networkJSON, f.noExclusions)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.hub, "hub", "", "hub code or name")
	fl.StringVar(&f.member, "member", "", "alliance member whose network is excluded (default: your own)")
	fl.IntVar(&f.class, "class", 0, "aircraft class tier")
	fl.IntVar(&f.speed, "speed", 0, "aircraft speed in km/h")
	fl.IntVar(&f.maxRange, "range", 0, "aircraft range in km")
	fl.IntVar(&f.count, "count", 1, "number of circuits to build")
	fl.StringVar(&f.networkJSON, "network-json", "", "saved network map payload to exclude instead of scraping")
	fl.BoolVar(&f.noExclusions, "no-exclusions", false, "exclude no destinations")
	_ = cmd.MarkFlagRequired("hub")
	_ = cmd.MarkFlagRequired("speed")
	_ = cmd.MarkFlagRequired("range")
	cmd.MarkFlagsMutuallyExclusive("network-json", "no-exclusions")

	return cmd
}

// plan opens the configured adapters, runs one session and prints it.
func (c *cli) plan(cmd *cobra.Command, req services.PlanCircuitsRequest, networkJSON string, noExclusions bool) error {
	ctx := cmd.Context()

	catalog, closeCatalog, err := app.OpenCatalog(ctx, c.cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeCatalog()

	cfg := c.cfg
	if networkJSON != "" {
		cfg.Exclusions.NetworkFile = networkJSON
	}

	var exclusions ports.ExclusionSource
	if !noExclusions {
		src, closeSource, err := app.OpenExclusions(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()
		exclusions = src
	}

	req.Search = app.SearchOptions(c.cfg.Search)
	plan, err := services.PlanCircuits(ctx, req, catalog, exclusions)
	if err != nil {
		return err
	}

	renderPlan(cmd.OutOrStdout(), plan)
	return nil
}
