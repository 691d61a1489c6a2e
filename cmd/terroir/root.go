package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/terroir/internal/config"
	"github.com/HerbHall/terroir/internal/simulation"
	"github.com/HerbHall/terroir/internal/version"
	"github.com/HerbHall/terroir/pkg/catalog"
)

// app holds what every subcommand needs once the root pre-run has finished.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	level      zap.AtomicLevel
	engine     *simulation.Engine
}

// newRootCommand builds the command tree. Each call returns an independent
// tree so tests can execute commands in isolation.
func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "terroir",
		Short:         "Match a terroir to wine regions and grape varieties",
		Long:          "Scores every catalog region and grape against a temperature, rainfall,\naltitude and soil, and derives the flavor profile those grapes share.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	versionCmd := newVersionCommand()

	rootCmd.AddCommand(
		newServeCommand(a),
		newSimulateCommand(a),
		newRegionsCommand(a),
		newGrapesCommand(a),
		newMCPCommand(a),
		versionCmd,
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return a.initialize(cmd)
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		if a.logger != nil {
			_ = a.logger.Sync()
		}
	}

	return rootCmd
}

// initialize loads configuration, builds the logger and loads the catalog.
func (a *app) initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Viper().Set("log.level", f.Value.String())
	}
	a.cfg = cfg

	logger, level, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	a.level = level

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if dangling := cat.DanglingReferences(); len(dangling) > 0 {
		a.logger.Debug("catalog has unresolved relationship ids",
			zap.Int("count", len(dangling)),
			zap.Any("references", dangling))
	}
	a.engine = simulation.NewEngine(cat)

	a.logger.Debug("terroir initialized", version.Fields()...)
	return nil
}

// newLogger builds a zap logger writing to stderr. The returned level can
// be changed at runtime.
func newLogger(cfg *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	zc := zap.NewProductionConfig()
	if cfg.GetBool("log.development") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if lvl := cfg.GetString("log.level"); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, zap.AtomicLevel{}, fmt.Errorf("log.level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(parsed)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("build logger: %w", err)
	}
	return logger, zc.Level, nil
}
