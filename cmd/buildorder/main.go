package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/napolitain/buildorder/internal/config"
	"github.com/napolitain/buildorder/internal/loader"
	"github.com/napolitain/buildorder/internal/planner"
)

// app is the state shared by every subcommand once configuration is loaded
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
	planner *planner.Planner
	stderr  io.Writer
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "buildorder",
		Short: "RTS build order simulator and validator",
		Long: `Replays a timed build order second by second against a unit catalog,
tracking mineral, gas, supply and production queues, and reports every
action that could not legally happen when scheduled.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.buildorder.yaml)")
	flags.String("catalog", "", "unit catalog file (toml, yaml or json); built-in Terran catalog when empty")
	flags.String("db", "buildorder.db", "SQLite database for saved orders")
	flags.BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("catalog", flags.Lookup("catalog"))
	_ = viper.BindPFlag("db", flags.Lookup("db"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	rootCmd.AddCommand(
		newValidateCmd(a),
		newTimelineCmd(a),
		newQuickestCmd(a),
		newActionsCmd(a),
		newCatalogCmd(a),
		newWatchCmd(a),
		newStoreCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Log, a.stderr)

	catalog, err := loader.CatalogOrDefault(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	a.logger.Debug("catalog loaded", "path", cfg.Catalog, "units", len(catalog.Units()))
	a.planner = planner.New(catalog, cfg.Economy, a.logger)
	return nil
}
