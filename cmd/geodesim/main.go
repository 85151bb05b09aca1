package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/geodesim/internal/config"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/gui"
	"github.com/san-kum/geodesim/internal/player"
	"github.com/san-kum/geodesim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dataDir    string
	configFile string
	logFile    string
	verbose    bool

	preset    string
	horizon   int
	frameRate int
	batch     int
	cellSize  int
	outDir    string

	solveMinutes int
	topMinutes   int
	topN         int
	skipTop      bool

	renderSteps int
	frameSteps  int
	recordSteps int
	outFile     string
	framesTo    string
	gifOut      string

	sweepFrom int
	sweepTo   int
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// main registers the commands. With no subcommand it plays the input
// picked by --preset or --config, or shows the preset menu. It exits with
// status 1 if the command fails.
func main() {
	var closeLog func()
	rootCmd := &cobra.Command{
		Use:   "geodesim",
		Short: "robot blueprint search player",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			closeLog, err = setupLogging()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if inputChosen(cmd, cfg) {
				return runPlay(cmd, args)
			}
			return viz.RunMenu(config.Presets, engine.NewFactory(engineOptions(cfg)), cfg.Batch, vizOptions(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geodesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "built-in input to use when no file is given")
	rootCmd.PersistentFlags().IntVar(&horizon, "horizon", config.DefaultHorizon, "minutes to simulate")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second while playing")
	rootCmd.PersistentFlags().IntVar(&batch, "batch", config.DefaultBatch, "steps taken by the batch key")
	rootCmd.PersistentFlags().IntVar(&cellSize, "cell", config.DefaultCellSize, "svg cell size in pixels")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", ".", "directory for exported drawings")

	playCmd := &cobra.Command{
		Use:   "play [file]",
		Short: "play a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [file]",
		Short: "play a simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	solveCmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "best geode counts, quality sum and top product",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	solveCmd.Flags().IntVar(&solveMinutes, "minutes", config.DefaultSolveMinutes, "minutes for the quality sum")
	solveCmd.Flags().IntVar(&topMinutes, "top-minutes", config.DefaultTopMinutes, "minutes for the top product")
	solveCmd.Flags().IntVar(&topN, "top", config.DefaultTopN, "blueprints in the top product")
	solveCmd.Flags().BoolVar(&skipTop, "skip-top", false, "skip the top product")

	sweepCmd := &cobra.Command{
		Use:   "sweep [file]",
		Short: "best geode counts for a range of minutes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 1, "first minute")
	sweepCmd.Flags().IntVar(&sweepTo, "to", config.DefaultHorizon, "last minute")

	benchCmd := &cobra.Command{
		Use:   "bench [file]",
		Short: "time every step of a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "write the svg drawing after some steps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&renderSteps, "steps", 0, "steps to take before drawing")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	framesCmd := &cobra.Command{
		Use:   "frames [file]",
		Short: "write one svg per step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFrames,
	}
	framesCmd.Flags().StringVar(&framesTo, "dir", "frames", "output directory")
	framesCmd.Flags().IntVar(&frameSteps, "steps", config.DefaultHorizon, "steps to take")
	framesCmd.Flags().StringVar(&gifOut, "gif", "", "also write an animated gif")

	recordCmd := &cobra.Command{
		Use:   "record [file]",
		Short: "run a simulation and save a run record",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&recordSteps, "steps", 0, "steps to take (default: to the horizon)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot frontier sizes of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	scriptCmd := &cobra.Command{
		Use:   "script [file.yaml]",
		Short: "replay a scripted session",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				text, _ := config.GetPreset(name)
				fmt.Printf("  %s\n", name)
				if verbose {
					fmt.Println(text)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, guiCmd, solveCmd, sweepCmd, benchCmd, renderCmd, framesCmd, recordCmd,
		listCmd, plotCmd, exportCmd, exportCSVCmd, scriptCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging points the logger at --log. The terminal player owns the
// screen, so without a log file nothing is written.
func setupLogging() (func(), error) {
	if logFile == "" {
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "geodesim")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return func() { f.Close() }, nil
}

// loadConfig reads --config and lets flags that were set explicitly
// override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg and validates the
// result. Flags left at their defaults never replace config values.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("preset") {
		name, err := flags.GetString("preset")
		if err != nil {
			return err
		}
		cfg.Preset = name
		cfg.Input = ""
	}
	ints := []struct {
		flag string
		dst  *int
	}{
		{"horizon", &cfg.Horizon},
		{"fps", &cfg.FPS},
		{"batch", &cfg.Batch},
		{"cell", &cfg.CellSize},
		{"minutes", &cfg.Solve.Minutes},
		{"top-minutes", &cfg.Solve.TopMinutes},
		{"top", &cfg.Solve.TopN},
	}
	for _, f := range ints {
		if !flags.Changed(f.flag) {
			continue
		}
		v, err := flags.GetInt(f.flag)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return cfg.Validate()
}

// inputChosen reports whether the user picked an input through --preset
// or the config file, in which case the root command skips the menu.
func inputChosen(cmd *cobra.Command, cfg *config.Config) bool {
	return cmd.Flags().Changed("preset") || cfg.Input != "" || (configFile != "" && cfg.Preset != config.DefaultPreset)
}

// loadInput resolves the blueprint text for commands taking an optional
// file argument and names its source.
func loadInput(cmd *cobra.Command, args []string) (*config.Config, string, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", "", err
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	text, err := cfg.ResolveInput(path)
	if err != nil {
		return nil, "", "", err
	}
	source := cfg.Preset
	switch {
	case path != "":
		source = filepath.Base(path)
	case cfg.Input != "":
		source = "config"
	case source == "":
		source = config.DefaultPreset
	}
	logger.Debug("input resolved", "source", source, "bytes", len(text))
	return cfg, text, source, nil
}

func engineOptions(cfg *config.Config) engine.Options {
	return engine.Options{Horizon: cfg.Horizon, CellSize: cfg.CellSize}
}

func vizOptions(cfg *config.Config) viz.Options {
	return viz.Options{FPS: cfg.FPS, OutDir: outDir, Logger: logger}
}

func newSession(cfg *config.Config, text string) player.Session {
	return player.New(engine.NewFactory(engineOptions(cfg)), text, player.WithBatch(cfg.Batch))
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(newSession(cfg, text), source, vizOptions(cfg))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, text, source, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	gui.Run(newSession(cfg, text), source, gui.Options{FPS: cfg.FPS, OutDir: outDir, Logger: logger})
	return nil
}
