package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/fview-histogram/internal/config"
	"github.com/ironsheep/fview-histogram/internal/histogram"
	"github.com/ironsheep/fview-histogram/internal/host"
	applog "github.com/ironsheep/fview-histogram/internal/log"
)

var (
	// cfg is resolved from the environment and flags before any subcommand runs.
	cfg config.Config

	intervalMsec int
	logLevel     string
	plotWidth    int
	plotHeight   int
)

var rootCmd = &cobra.Command{
	Use:   "fview-histogram",
	Short: "Live intensity histogram for camera frames",
	Long: `fview-histogram computes a rate-limited intensity histogram of MONO8
camera frames. By default it runs as an MCP server over stdin/stdout;
the replay and capture commands drive it from image files or a webcam.`,
	Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = resolveConfig(cmd)
		if err != nil {
			return err
		}
		applog.Init(cfg.LogLevel)
		applog.Debug("configuration resolved",
			"update_interval_msec", cfg.UpdateIntervalMsec,
			"plot_width", cfg.PlotWidth,
			"plot_height", cfg.PlotHeight)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "fview-histogram %s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&intervalMsec, "interval-ms", config.DefaultUpdateIntervalMsec, "Minimum milliseconds between histogram updates (env "+config.EnvUpdateInterval+")")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	flags.IntVar(&plotWidth, "plot-width", config.DefaultPlotWidth, "Rendered histogram width in pixels")
	flags.IntVar(&plotHeight, "plot-height", config.DefaultPlotHeight, "Rendered histogram height in pixels")
}

// resolveConfig layers explicitly set flags over the environment.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	c, err := config.FromEnv()
	if err != nil {
		return c, err
	}

	flags := cmd.Flags()
	if flags.Changed("interval-ms") {
		c.UpdateIntervalMsec = intervalMsec
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("plot-width") {
		c.PlotWidth = plotWidth
	}
	if flags.Changed("plot-height") {
		c.PlotHeight = plotHeight
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// newPipeline wires a histogram plugin into a fresh host.
func newPipeline(c config.Config) (*histogram.Updater, *host.Host, error) {
	updater := histogram.NewUpdater(histogram.WithInterval(c.UpdateInterval()))
	reg := host.NewRegistry()
	if err := reg.Register(updater); err != nil {
		return nil, nil, err
	}
	return updater, host.New(reg), nil
}
