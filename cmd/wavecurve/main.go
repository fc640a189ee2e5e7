package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavecurve/internal/config"
	"github.com/san-kum/wavecurve/internal/curves"
	"github.com/san-kum/wavecurve/internal/logging"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

var (
	dataDir string
	verbose bool

	theta    float64
	ta       float64
	tStart   float64
	tEnd     float64
	samples  int
	workers  int
	step     float64
	nodes    int
	epsilon  float64
	every    int
	braille  bool
	outFile  string
	noBase   bool
	theme    string
	bench    int
	runName  string
	sweepMin     float64
	sweepMax     float64
	sweepN       int
	sweepTa      float64
	sweepSamples int

	tuneMetric  string
	tuneTarget  float64
	tuneTheta   string
	tuneTa      string
	tuneSamples int

	configFile string
	preset     string

	log      *zap.Logger
	registry = curves.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wavecurve",
		Short:         "wave-modulated parametric curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			log = l
			log.Debug("command", zap.String("name", cmd.Name()), zap.Strings("args", args))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavecurve", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	curvesCmd := &cobra.Command{
		Use:   "curves",
		Short: "list curve families",
		RunE:  listCurves,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [curve]",
		Short: "list available presets for a curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for curve: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [curve]",
		Short: "sample a wave and print it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleCurve,
	}
	addSamplingFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&every, "every", 16, "print every n-th sample")

	runCmd := &cobra.Command{
		Use:   "run [curve]",
		Short: "sample a wave and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCurve,
	}
	addSamplingFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run id (generated if empty)")

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
	plotCmd.Flags().BoolVar(&braille, "braille", true, "draw the curve on a braille canvas")
	plotCmd.Flags().BoolVar(&noBase, "no-base", false, "hide the base curve")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "wavelength and spectrum of the normal offset",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&noBase, "no-base", false, "hide the base curve")
	exportSVGCmd.Flags().StringVar(&configFile, "config", "", "config file for output settings (yaml)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [curve]",
		Short: "sample a curve across a theta range",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepCurve,
	}
	addSweepFlags(sweepCmd)

	liveCmd := &cobra.Command{
		Use:   "live [curve]",
		Short: "animate a wave in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSamplingFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	benchCmd := &cobra.Command{
		Use:   "bench [curve]",
		Short: "benchmark a curve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchCurve,
	}
	addSamplingFlags(benchCmd)
	benchCmd.Flags().IntVar(&bench, "iterations", 10, "sampling runs")

	tuneCmd := &cobra.Command{
		Use:   "tune [curve]",
		Short: "grid search theta and ta for a metric target",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneCurve,
	}
	addTuneFlags(tuneCmd)

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write a config file with the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(curvesCmd, presetsCmd, sampleCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportSVGCmd, exportCSVCmd, exportJSONCmd, deleteCmd, scenarioCmd, sweepCmd, tuneCmd, liveCmd, benchCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// Sweep and tune own their flag variables so that registering one command
// never rewrites another command's defaults.
func addSweepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&sweepMin, "min", 0, "first theta")
	f.Float64Var(&sweepMax, "max", 1, "last theta")
	f.IntVar(&sweepN, "steps", 5, "number of theta values")
	f.Float64Var(&sweepTa, "ta", config.DefaultTa, "wavelength scale")
	f.IntVar(&sweepSamples, "samples", config.DefaultSamples, "samples per theta")
}

func addTuneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&tuneMetric, "metric", "max_displacement", "metric to match")
	f.Float64Var(&tuneTarget, "target", 0, "metric target value")
	f.StringVar(&tuneTheta, "theta", "0:1:11", "theta grid lo:hi:n")
	f.StringVar(&tuneTa, "ta", "0.05", "ta grid lo:hi:n")
	f.IntVar(&tuneSamples, "samples", 256, "samples per grid point")
}

func addSamplingFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&theta, "theta", 0, "family parameter")
	f.Float64Var(&ta, "ta", config.DefaultTa, "wavelength scale")
	f.Float64Var(&tStart, "t-start", 0, "first parameter value")
	f.Float64Var(&tEnd, "t-end", config.DefaultTEnd, "last parameter value")
	f.IntVar(&samples, "samples", config.DefaultSamples, "number of samples")
	f.IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "sampling goroutines")
	f.Float64Var(&step, "step", trajectory.DefaultStep, "finite difference step")
	f.IntVar(&nodes, "nodes", trajectory.DefaultNodes, "quadrature nodes")
	f.Float64Var(&epsilon, "epsilon", trajectory.DefaultEpsilon, "normal fallback speed threshold")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}
