package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavecurve/internal/analysis"
	"github.com/san-kum/wavecurve/internal/config"
	"github.com/san-kum/wavecurve/internal/export"
	"github.com/san-kum/wavecurve/internal/logging"
	"github.com/san-kum/wavecurve/internal/metrics"
	"github.com/san-kum/wavecurve/internal/optim"
	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/scenario"
	"github.com/san-kum/wavecurve/internal/storage"
	"github.com/san-kum/wavecurve/internal/viz"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	curve := ""
	if len(args) > 0 {
		curve = args[0]
	}

	if preset != "" {
		if curve == "" {
			return nil, errors.New("--preset needs a curve argument")
		}
		p := config.GetPreset(curve, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(curve))
		}
		cfg = p
		log.Debug("preset", zap.String("curve", curve), zap.String("name", preset))
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Debug("config file", zap.String("path", configFile))
	}

	if curve != "" {
		cfg.Curve = curve
	}

	f := cmd.Flags()
	if f.Changed("theta") {
		cfg.Theta = theta
	}
	if f.Changed("ta") {
		cfg.Ta = ta
	}
	if f.Changed("t-start") {
		cfg.TStart = tStart
	}
	if f.Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if f.Changed("samples") {
		cfg.Samples = samples
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("step") {
		cfg.Kernel.Step = step
	}
	if f.Changed("nodes") {
		cfg.Kernel.Nodes = nodes
	}
	if f.Changed("epsilon") {
		cfg.Kernel.Epsilon = epsilon
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSampler(cfg *config.Config) (*sampler.Sampler, error) {
	tr, err := registry.GetWithParams(cfg.Curve, cfg.Kernel)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, registry.Names())
	}
	s := sampler.New(tr, log)
	for _, m := range metrics.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s, nil
}

func runSampling(cmd *cobra.Command, args []string) (*config.Config, *sampler.Result, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	s, err := newSampler(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	done := logging.Step(log, "sample", zap.String("curve", cfg.Curve), zap.Int("samples", cfg.Samples))
	result, err := s.Run(ctx, cfg.Sampler())
	done()
	if err != nil {
		return nil, nil, err
	}
	return cfg, result, nil
}

func listCurves(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tPRESETS")
	for _, name := range registry.Names() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, registry.Describe(name), len(config.ListPresets(name)))
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%.6g\n", k, m[k])
	}
	w.Flush()
}

func sampleCurve(cmd *cobra.Command, args []string) error {
	cfg, result, err := runSampling(cmd, args)
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}

	fmt.Printf("curve: %s  theta: %g  ta: %g  samples: %d  (%v)\n\n", cfg.Curve, cfg.Theta, cfg.Ta, len(result.Samples), result.Elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "T\tS\tAMP\tOFFSET\tX\tY\t")
	for i, s := range result.Samples {
		if i%every != 0 && i != len(result.Samples)-1 {
			continue
		}
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%+.5f\t%.5f\t%.5f\t\n", s.T, s.ArcLength, s.Amplitude, s.NormalOffset, s.Point.X, s.Point.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, result, err := runSampling(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.NewMetadata(cfg.Curve, cfg.Kernel, result)
	meta.ID = runName
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	log.Info("saved run", zap.String("id", runID), zap.String("dir", dataDir))

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d in %v\n", len(result.Samples), result.Elapsed)
	printMetrics(result.Metrics)
	return nil
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
	fmt.Fprintln(w, "ID\tCURVE\tTIME\tTHETA\tTA\tRANGE\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t[%.3g, %.3g]\t%d\n",
			run.ID,
			run.Curve,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Theta,
			run.Ta,
			run.TStart, run.TEnd,
			run.Samples,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sampler.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	smp, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(smp) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, &sampler.Result{Samples: smp, Metrics: meta.Metrics}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("curve: %s  theta: %g  ta: %g\n", meta.Curve, meta.Theta, meta.Ta)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	if braille {
		c, _ := viz.RenderWave(result.Samples, 60, 24, !noBase)
		fmt.Println(c.String())
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"normal offset vs t", result.Offsets()},
		{"arc length vs t", result.ArcLengths()},
	}
	for _, s := range series {
		if !finite(s.data) {
			fmt.Printf("%s: non-finite values, skipped\n\n", s.caption)
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	offsets := result.Offsets()
	fmt.Printf("run: %s (%s, ta=%g)\n\n", meta.ID, meta.Curve, meta.Ta)

	wl, err := analysis.DominantWavelength(result.ArcLengths(), offsets)
	switch {
	case err != nil:
		fmt.Printf("dominant wavelength: n/a (%v)\n", err)
	case math.IsInf(wl, 1):
		fmt.Println("dominant wavelength: none (flat signal)")
	default:
		fmt.Printf("dominant wavelength: %.6f  (2*pi*ta = %.6f)\n", wl, 2*math.Pi*meta.Ta)
	}
	fmt.Printf("zero crossings:      %d\n\n", analysis.ZeroCrossings(offsets))

	if !finite(offsets) {
		return nil
	}
	spectrum := analysis.PowerSpectrum(offsets)
	if len(spectrum) < 3 {
		return nil
	}
	plotData := spectrum[1:min(len(spectrum), 129)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (normal offset)"),
	)
	fmt.Println(graph)
	return nil
}

func openOut(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	_, result, err := loadRun(runID)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}

	opts := export.DefaultSVGOptions()
	opts.Width = cfg.Output.Width
	opts.Height = cfg.Output.Height
	opts.BaseStroke = cfg.Output.BaseStroke
	opts.WaveStroke = cfg.Output.WaveStroke
	opts.ShowBase = !noBase

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(export.SVG(result.Samples, opts)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := openOut(outFile)
	if err != nil {
		return err
	}
	if err := storage.WriteSamples(w, result.Samples); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := openOut(outFile)
	if err != nil {
		return err
	}
	if err := export.JSON(w, *meta, result.Samples); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func deleteRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}

	report, err := scenario.NewRunner(registry, st, log).Run(ctx, sc)
	if report != nil {
		printReport(report)
	}
	return err
}

func printReport(r *scenario.Report) {
	if len(r.Steps) > 0 {
		fmt.Println("\nsteps:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tCURVE\tTHETA\tTA\tMAX OFFSET\tWAVE LENGTH\tRUN")
		for i, s := range r.Steps {
			cfg := s.Result.Config
			fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%.5f\t%.5f\t%s\n", i+1, s.Step.Curve, cfg.Theta, cfg.Ta,
				s.Result.Metrics["max_displacement"], s.Result.Metrics["wave_length"], s.RunID)
		}
		w.Flush()
	}

	if len(r.Sweep) > 0 {
		printSweep(r.Sweep)
	}

	if len(r.Trials) > 0 {
		fin, nonFin := scenario.TrialStats(r.Trials)
		fallbacks := 0
		for _, t := range r.Trials {
			fallbacks += t.Fallbacks
		}
		fmt.Printf("\nmonte carlo: %d trials, %d finite, %d non-finite, %d fallback normals\n",
			len(r.Trials), fin, nonFin, fallbacks)
	}
}

func printSweep(points []scenario.SweepPoint) {
	fmt.Println("\nsweep:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THETA\tWAVELENGTH\tMAX OFFSET\tBASE LENGTH")
	for _, p := range points {
		fmt.Fprintf(w, "%.4f\t%.5f\t%.5f\t%.5f\n", p.Theta, p.Wavelength, p.Metrics["max_displacement"], p.Metrics["base_length"])
	}
	w.Flush()
}

func sweepCurve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sw := scenario.Sweep{
		Curve:    args[0],
		Ta:       sweepTa,
		ThetaMin: sweepMin,
		ThetaMax: sweepMax,
		NumSteps: sweepN,
		Samples:  sweepSamples,
	}
	points, err := scenario.NewRunner(registry, nil, log).RunSweep(ctx, sw)
	if err != nil {
		return err
	}
	printSweep(points)
	return nil
}

func tuneCurve(cmd *cobra.Command, args []string) error {
	thetas, err := optim.ParseRange(tuneTheta)
	if err != nil {
		return err
	}
	tas, err := optim.ParseRange(tuneTa)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Curve = args[0]
	cfg.Samples = tuneSamples
	s, err := newSampler(cfg)
	if err != nil {
		return err
	}

	gs, err := optim.NewGridSearch([]string{"theta", "ta"}, [][]float64{thetas, tas})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Printf("searching %d grid points for %s = %g...\n", gs.Size(), tuneMetric, tuneTarget)
	best, score, err := gs.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		sc := cfg.Sampler()
		sc.Theta, sc.Ta = p["theta"], p["ta"]
		res, err := s.Run(ctx, sc)
		if err != nil {
			log.Debug("grid point failed", zap.Error(err), zap.Float64("theta", sc.Theta), zap.Float64("ta", sc.Ta))
			return 0, err
		}
		v, ok := res.Metrics[tuneMetric]
		if !ok {
			return 0, fmt.Errorf("unknown metric %s", tuneMetric)
		}
		return math.Abs(v - tuneTarget), nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("best theta: %g\n", best["theta"])
	fmt.Printf("best ta:    %g\n", best["ta"])
	fmt.Printf("|%s - target|: %.6g\n", tuneMetric, score)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	tr, err := registry.GetWithParams(cfg.Curve, cfg.Kernel)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Curve, tr, cfg.Sampler(), log).WithTheme(theme)
	return viz.Run(m)
}

func benchCurve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	tr, err := registry.GetWithParams(cfg.Curve, cfg.Kernel)
	if err != nil {
		return err
	}
	if bench < 1 {
		bench = 1
	}

	fmt.Printf("benchmarking %s (%d samples, %d runs)...\n", cfg.Curve, cfg.Samples, bench)

	const evals = 10000
	start := time.Now()
	for i := 0; i < evals; i++ {
		tr.ArcLength(cfg.TEnd*float64(i)/evals, cfg.Theta)
	}
	arcTime := time.Since(start)

	s := sampler.New(tr, log)
	sc := cfg.Sampler()
	seq := sc
	seq.Workers = 1

	timeRuns := func(c sampler.Config) (time.Duration, error) {
		start := time.Now()
		for i := 0; i < bench; i++ {
			if _, err := s.Run(context.Background(), c); err != nil {
				return 0, err
			}
		}
		return time.Since(start) / time.Duration(bench), nil
	}
	seqTime, err := timeRuns(seq)
	if err != nil {
		return err
	}
	parTime, err := timeRuns(sc)
	if err != nil {
		return err
	}

	fmt.Printf("arc length:        %v/eval (%d nodes)\n", arcTime/evals, cfg.Kernel.Nodes)
	fmt.Printf("sample sequential: %v/run\n", seqTime)
	fmt.Printf("sample parallel:   %v/run (%d workers)\n", parTime, sc.Workers)
	if parTime > 0 {
		fmt.Printf("speedup:           %.2fx\n", float64(seqTime)/float64(parTime))
	}
	return nil
}

func finite(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
