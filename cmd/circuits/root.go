package main

import (
	"circuit-planner-service/internal/config"
	"circuit-planner-service/internal/platform/obs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds state shared by every subcommand once the root has loaded config.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "circuits",
		Short: "Plan 168-hour flight circuits from a hub's route catalog",
		Long: `circuits builds weekly circuits for one aircraft: sets of routes from a hub
whose round-trip duty times add up to exactly 168 hours, skipping
destinations the network already serves.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = c.logger.Sync() },
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("CIRCUITS_CONFIG"), "YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		c.newHubsCmd(),
		c.newPlanCmd(),
		c.newInteractiveCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal; the environment and config file still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	logger, err := obs.NewLogger(level, true)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger
	cmd.SetContext(obs.WithLogger(cmd.Context(), logger))
	return nil
}
