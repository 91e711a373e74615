package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/export"
	"github.com/san-kum/starfield/internal/gui"
	"github.com/san-kum/starfield/internal/metrics"
	"github.com/san-kum/starfield/internal/serve"
	"github.com/san-kum/starfield/internal/starfield"
	"github.com/san-kum/starfield/internal/storage"
	"github.com/san-kum/starfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	mode       string
	population int
	seed       int64
	backend    string
	runFrames  int
	snapFrames int
	runs       int
	outFile    string
	logLevel   string

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "starfield",
		Short: "flying stars screensaver",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".starfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&mode, "mode", "", "input mode (wheel|pointer)")
	pf.IntVar(&population, "population", 0, "initial number of stars")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the star field in a desktop window",
		RunE:  runWindow,
	}
	for _, c := range []*cobra.Command{rootCmd, windowCmd} {
		c.Flags().StringVar(&backend, "backend", "", "window backend (raylib|ebiten)")
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the star field in the terminal",
		RunE:  runLive,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the terminal star field over ssh",
		RunE:  runServe,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record per-frame statistics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "number of frames")
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of runs, seeded consecutively and run in parallel")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 300, "frames to advance before the snapshot")
	snapshotCmd.Flags().StringVar(&outFile, "out", "starfield.svg", "output file (- for stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTARS\tMODE\tSPEED\tGROWTH")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%s\t%.4f\t%.3f\n", name, p.Population, p.Mode, p.BaseSpeed, p.BaseSize)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(windowCmd, liveCmd, serveCmd, runCmd, listCmd, plotCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "starfield",
		Level:           level,
	})
	return nil
}

// loadConfig layers defaults, config file, preset and explicit flags, each
// overriding the one before.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("population") {
		cfg.Population = population
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateWindow(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	f, p, err := cfg.NewField(cfg.Bounds())
	if err != nil {
		return err
	}
	return gui.Run(f, p, gui.Options{
		Backend:   cfg.Backend,
		Width:     cfg.Width,
		Height:    cfg.Height,
		FrameRate: cfg.FrameRate,
		Base:      cfg.BaseRates(),
		Logger:    logger,
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.FromConfig(cfg, cfg.Terminal.Cols, cfg.Terminal.Rows)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running live view: %w", err)
	}
	if fm, ok := final.(viz.Model); ok {
		logger.Debug("live view closed", "frames", fm.Field().Frame(), "stars", fm.Field().Len())
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	srv, err := serve.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := starfield.Ensemble{
		Population: cfg.Population,
		Bounds:     cfg.Bounds(),
		Rates:      cfg.BaseRates(),
		Runs:       runs,
		SeedStart:  cfg.Seed,
		NewMetrics: metrics.All,
	}

	logger.Info("running headless", "frames", runFrames, "runs", runs, "stars", cfg.Population, "mode", cfg.Mode)
	start := time.Now()

	results, err := e.Run(ctx, runFrames)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("run interrupted", "err", err)
	}
	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	for i, result := range results {
		if result == nil {
			continue
		}
		runID, err := st.Save(storage.RunMetadata{
			Preset:     preset,
			Seed:       cfg.Seed + int64(i),
			Width:      float64(cfg.Width),
			Height:     float64(cfg.Height),
			Population: cfg.Population,
			Mode:       cfg.Mode,
		}, result)
		if err != nil {
			return err
		}
		printSummary(runID, result)
	}
	return nil
}

func printSummary(runID string, result *starfield.Result) {
	fmt.Printf("\nrun id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("metrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tSTARS\tMODE\tSIZE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.0fx%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Population,
			run.Mode,
			run.Width,
			run.Height,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", series.Len())

	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Population, "population"},
		{series.Resets, "resets per frame"},
		{series.MeanSpeed, "mean speed"},
		{series.MaxSize, "max size"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, _, err := cfg.NewField(cfg.Bounds())
	if err != nil {
		return err
	}

	img := export.NewSVG(cfg.Bounds())
	if _, err := f.Run(cmd.Context(), snapFrames, img); err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "-" {
		file, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	img.Write(w)

	if outFile != "-" {
		logger.Info("wrote snapshot", "file", outFile, "stars", img.Len())
	}
	return nil
}
