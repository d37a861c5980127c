package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/plotanim/internal/config"
	"github.com/san-kum/plotanim/internal/driver"
	"github.com/san-kum/plotanim/internal/export"
	"github.com/san-kum/plotanim/internal/frame"
	"github.com/san-kum/plotanim/internal/palette"
	"github.com/san-kum/plotanim/internal/plot"
	"github.com/san-kum/plotanim/internal/sampler"
	"github.com/san-kum/plotanim/internal/terminal"
	"github.com/san-kum/plotanim/internal/tui"
)

var (
	configFile string
	preset     string
	fps        int
	engine     string
	theme      string
	aggregate  string
	pin        string
	logLevel   string
	logFile    string
	// single frame
	at   int64
	cols int
	rows int
	// samples export
	count  int
	step   int64
	width  int
	format string
	out    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "plotanim",
		Short:        "animated function plots in the terminal",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&engine, "engine", plot.EngineUnicode, fmt.Sprintf("render engine %v", plot.Engines()))
	pf.StringVar(&theme, "theme", frame.ThemePlain.Name, fmt.Sprintf("color theme %v", frame.ThemeNames()))
	pf.StringVar(&aggregate, "aggregate", plot.Average.String(), "how samples in one column combine (average, min, max, first, last)")
	pf.StringVar(&pin, "pin", "", "show only this function")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "animate in the current terminal (default)",
		RunE:  runPlay,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "animate in a full screen bubbletea view",
		RunE:  runTUI,
	}

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "print a single frame",
		RunE:  printFrame,
	}
	frameCmd.Flags().Int64Var(&at, "at", 0, "animation time in milliseconds")
	frameCmd.Flags().IntVar(&cols, "cols", 0, "terminal columns (default: detected)")
	frameCmd.Flags().IntVar(&rows, "rows", 0, "terminal rows (default: detected)")

	samplesCmd := &cobra.Command{
		Use:   "samples",
		Short: "export sampled frames as csv or json",
		RunE:  exportSamples,
	}
	samplesCmd.Flags().Int64Var(&at, "at", 0, "time of the first frame in milliseconds")
	samplesCmd.Flags().IntVar(&count, "count", 1, "number of frames")
	samplesCmd.Flags().Int64Var(&step, "step", 1000/config.DefaultFPS, "milliseconds between frames")
	samplesCmd.Flags().IntVar(&width, "width", terminal.DefaultCols-config.DefaultMarginCols, "chart width in columns")
	samplesCmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "output format (csv, json)")
	samplesCmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list the function palette",
		RunE:  listFunctions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFPS\tENGINE\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.DefaultConfig()
				p.ApplyPreset(config.GetPreset(name))
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, p.FPS, p.Engine, p.Theme)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(playCmd, tuiCmd, frameCmd, samplesCmd, functionsCmd, presetsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.ApplyPreset(p)
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("engine") {
		cfg.Engine = engine
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("aggregate") {
		cfg.Aggregate = aggregate
	}
	if flags.Changed("pin") {
		cfg.Pin = pin
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to the configured file. Without one it writes to stderr,
// or nowhere while the terminal is being animated.
func newLogger(cfg *config.Config, animating bool) (*logrus.Entry, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: "2006-01-02 15:04:05", FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	closer := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = func() { f.Close() }
	case animating:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
	}
	return logrus.NewEntry(logger), closer, nil
}

func newComposer(cfg *config.Config, caption string) (*driver.Composer, error) {
	pal := palette.Default()
	if len(cfg.Functions) > 0 {
		sub, err := pal.Select(cfg.Functions...)
		if err != nil {
			return nil, err
		}
		pal = sub
	}

	s := sampler.New(pal, cfg.PeriodMs, cfg.Density)
	if err := s.Pin(cfg.Pin); err != nil {
		return nil, err
	}

	r, err := plot.New(cfg.Engine)
	if err != nil {
		return nil, err
	}
	th, err := frame.GetTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	agg, err := plot.ParseAggregate(cfg.Aggregate)
	if err != nil {
		return nil, err
	}

	return &driver.Composer{
		Sampler:   s,
		Renderer:  r,
		Theme:     th,
		Caption:   caption,
		Aggregate: agg,
		Margin:    cfg.Margin,
	}, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := newComposer(cfg, cfg.Caption)
	if err != nil {
		return err
	}

	ctx, release := terminal.WatchSignals(cmd.Context())
	defer release()

	d := driver.New(driver.Options{
		Out:      os.Stdout,
		Composer: c,
		Size:     terminal.SizeFunc(os.Stdout, cfg.Fallback),
		FPS:      cfg.FPS,
		Log:      log.WithField("component", "driver"),
	})

	log.WithFields(logrus.Fields{
		"fps":    cfg.FPS,
		"engine": cfg.Engine,
		"theme":  cfg.Theme,
	}).Info("animation started")

	err = d.Run(ctx)

	stats := d.Stats()
	log.WithFields(logrus.Fields{
		"frames":  stats.Frames,
		"skipped": stats.Skipped,
		"clamped": stats.Clamped,
	}).Info("animation stopped")
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	caption := cfg.Caption
	if caption == config.DefaultCaption {
		caption = tui.Caption
	}
	c, err := newComposer(cfg, caption)
	if err != nil {
		return err
	}

	ctx, release := terminal.WatchSignals(cmd.Context())
	defer release()

	log.WithFields(logrus.Fields{"component": "tui", "fps": cfg.FPS}).Info("tui started")
	return tui.Run(ctx, c, cfg.FPS, terminal.Size(os.Stdout, cfg.Fallback))
}

func printFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := newComposer(cfg, cfg.Caption)
	if err != nil {
		return err
	}

	size := terminal.Size(os.Stdout, cfg.Fallback)
	if cols > 0 {
		size.Cols = cols
	}
	if rows > 0 {
		size.Rows = rows
	}

	screen := c.Compose(at, size)
	if screen.Clamped {
		log.WithFields(logrus.Fields{"component": "frame", "engine": cfg.Engine}).Debug("renderer output clamped")
	}
	fmt.Println(screen.String())
	return nil
}

func exportSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if count < 1 || width < 1 {
		return fmt.Errorf("count and width must be positive")
	}
	c, err := newComposer(cfg, cfg.Caption)
	if err != nil {
		return err
	}

	frames := make([]export.FrameData, 0, count)
	for i := 0; i < count; i++ {
		t := at + int64(i)*step
		frames = append(frames, export.NewFrameData(t, c.Sampler.Sample(t, width)))
	}
	if err := export.WriteFile(out, format, frames); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"component": "export",
		"frames":    count,
		"format":    format,
	}).Debug("samples exported")
	return nil
}

func listFunctions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pal := palette.Default()
	if len(cfg.Functions) > 0 {
		if pal, err = pal.Select(cfg.Functions...); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tY MIN\tY MAX\tSTARTS AT")
	for i := 0; i < pal.Len(); i++ {
		e := pal.At(i)
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.1fs\n",
			i, e.Name, e.YRange.Min, e.YRange.Max,
			float64(int64(i)*cfg.PeriodMs)/1000)
	}
	return w.Flush()
}
