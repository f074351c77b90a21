package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/export"
	"github.com/san-kum/ambient/internal/gallery"
	"github.com/san-kum/ambient/internal/gui"
	"github.com/san-kum/ambient/internal/sim"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/tui"
	"github.com/san-kum/ambient/internal/visuals"
	"github.com/san-kum/ambient/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Persistent
	configFile string
	preset     string
	theme      string
	logFile    string
	// run
	duration  float64
	frameRate int
	seed      int64
	svgOut    string
	csvOut    string
	jsonOut   string
	numSeeds  int
	watch     bool
	// config init
	force bool
)

// main registers the commands and runs the gallery when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ambient",
		Short:         "ambient ML visuals in the terminal and on the desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGallery,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")

	runCmd := &cobra.Command{
		Use:   "run [component]",
		Short: "run a component headless and report its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "virtual seconds to run")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per virtual second")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the last frame as SVG")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the descent path, or the metric series, as CSV")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write a JSON summary")
	runCmd.Flags().IntVar(&numSeeds, "seeds", 1, "run this many consecutive seeds in parallel")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print frames to the terminal while running")

	liveCmd := &cobra.Command{
		Use:   "live [component]",
		Short: "run one component full screen in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui [component]",
		Short: "open the gallery in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", 60, "ticks per second")

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "list registered components",
		Args:  cobra.NoArgs,
		RunE:  listComponents,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, componentsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, YAML file, environment and changed
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log") {
		cfg.Log = logFile
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := viz.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLog sends log output to cfg.Log. Full-screen commands discard it
// otherwise so the terminal stays clean.
func setupLog(cfg *config.Config, fullScreen bool) (func(), error) {
	if cfg.Log != "" {
		f, err := tea.LogToFile(cfg.Log, "ambient")
		if err != nil {
			return nil, err
		}
		return func() { f.Close() }, nil
	}
	if fullScreen {
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLog(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()
	return tui.Run(cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := "attention"
	if len(args) > 0 {
		name = args[0]
	}
	reg := gallery.NewRegistry(cfg)
	entry, ok := reg.Entry(name)
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", gallery.ErrUnknownComponent, name, reg.Names())
	}
	w, h, err := reg.Size(name, cfg.Viewport.Width, cfg.Viewport.Height)
	if err != nil {
		return err
	}

	closeLog, err := setupLog(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	m := viz.NewLive(viz.LiveConfig{
		Name: name,
		Build: func() visuals.Component {
			c, _ := reg.Get(name)
			return c
		},
		Width:  w,
		Height: h,
		Fill:   entry.Background,
		FPS:    cfg.FPS,
		Seed:   cfg.Seed,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLog(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()
	start := ""
	if len(args) > 0 {
		start = args[0]
	}
	return gui.Run(cfg, start)
}

func listComponents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg := gallery.NewRegistry(cfg)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tROLE\tDESCRIPTION")
	for _, name := range reg.Names() {
		e, _ := reg.Entry(name)
		size, role := fmt.Sprintf("%gx%g", e.Width, e.Height), "tab"
		if e.Background {
			size, role = "viewport", "background"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, size, role, e.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "ambient.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLog(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	name := args[0]
	reg := gallery.NewRegistry(cfg)
	if _, ok := reg.Entry(name); !ok {
		return fmt.Errorf("%w: %s (available: %v)", gallery.ErrUnknownComponent, name, reg.Names())
	}
	w, h, err := reg.Size(name, cfg.Viewport.Width, cfg.Viewport.Height)
	if err != nil {
		return err
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive for a headless run", config.ErrInvalid)
	}
	newComponent := func() visuals.Component {
		c, _ := reg.Get(name)
		return c
	}
	newSurface := func() surface.Surface {
		switch {
		case svgOut != "":
			return export.NewSVG(w, h)
		case watch:
			return viz.NewCanvas(int(w/6), int(h/12), w, h)
		default:
			return surface.NewRecorder(w, h)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := sim.Config{FPS: cfg.FPS, Duration: cfg.Duration, Seed: cfg.Seed}
	out := cmd.OutOrStdout()

	if numSeeds > 1 {
		return runEnsemble(ctx, out, sim.New(newComponent, newSurface), simCfg, name)
	}
	if simCfg.Seed == 0 {
		simCfg.Seed = time.Now().UnixNano()
	}

	s := sim.New(newComponent, newSurface)
	trace := &pathTrace{}
	s.AddObserver(trace)
	if watch {
		wt := tui.NewWatcher(cfg.FPS)
		wt.Start()
		defer wt.Stop()
		s.AddObserver(wt)
	}

	fmt.Fprintf(out, "running %s for %.1fs at %d fps (seed %d)...\n", name, cfg.Duration, cfg.FPS, simCfg.Seed)
	start := time.Now()
	result, err := s.Run(ctx, simCfg)
	if err != nil && !errors.Is(err, sim.ErrLeak) {
		return err
	}
	fmt.Fprintf(out, "completed %d frames in %v\n\n", result.Frames, time.Since(start))

	for _, sr := range result.Series {
		if len(sr.Values) < 2 {
			continue
		}
		graph := asciigraph.Plot(sr.Values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.Metric.Name()),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMEAN\tLAST")
	for _, sr := range result.Series {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\n", sr.Metric.Name(), sr.Metric.Value(), sr.Metric.Last())
	}
	if ferr := tw.Flush(); ferr != nil {
		return ferr
	}

	if werr := writeOutputs(result, trace, cfg, name); werr != nil {
		return werr
	}
	// a leak still produced usable output, report it last
	return err
}

func writeOutputs(result *sim.Result, trace *pathTrace, cfg *config.Config, name string) error {
	if svgOut != "" {
		doc, ok := result.Surface.(*export.SVG)
		if !ok {
			return fmt.Errorf("run surface is not an SVG document")
		}
		if err := os.WriteFile(svgOut, []byte(doc.String()), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}

	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		if name == "descent" {
			err = export.WritePath(f, trace.points)
		} else {
			err = export.WriteSeries(f, result.Series)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}

	if jsonOut != "" {
		f, err := os.Create(jsonOut)
		if err != nil {
			return err
		}
		err = export.WriteSummary(f, export.Summary{
			Component: result.Component,
			Seed:      result.Seed,
			FPS:       cfg.FPS,
			Duration:  cfg.Duration,
			Frames:    result.Frames,
			Metrics:   result.Metrics,
		})
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}
	return nil
}

func runEnsemble(ctx context.Context, out io.Writer, s *sim.Simulator, cfg sim.Config, name string) error {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	fmt.Fprintf(out, "running %s over %d seeds from %d...\n", name, numSeeds, cfg.Seed)
	start := time.Now()
	results, err := sim.NewEnsemble(s, numSeeds, cfg.Seed).Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "completed in %v\n\n", time.Since(start))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tMIN\tMEAN\tMAX")
	for _, sp := range sim.Summarize(results) {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.6f\n", sp.Name, sp.Min, sp.Mean, sp.Max)
	}
	return tw.Flush()
}

// pathTrace records every descent position, start points included, across
// restarts. Each frame appends the part of the current path not yet seen,
// so frames longer than the step interval lose nothing.
type pathTrace struct {
	points []visuals.Point
	seen   int
	resets int
}

func (p *pathTrace) OnFrame(c visuals.Component, _ surface.Surface, _ time.Duration) {
	d, ok := c.(*visuals.Descent)
	if !ok {
		return
	}
	if d.Resets() != p.resets {
		p.resets, p.seen = d.Resets(), 0
	}
	path := d.Path()
	if p.seen < len(path) {
		p.points = append(p.points, path[p.seen:]...)
		p.seen = len(path)
	}
}

var _ sim.Observer = (*pathTrace)(nil)
