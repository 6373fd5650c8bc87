// Package config holds runtime settings for fview-histogram.
//
// Settings start from defaults, are overridden by environment variables,
// and finally by command-line flags bound in cmd/fview-histogram.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultUpdateIntervalMsec = 100
	DefaultLogLevel           = "info"
	DefaultPlotWidth          = 800
	DefaultPlotHeight         = 200
)

// Environment variables read by FromEnv.
const (
	EnvUpdateInterval = "FVIEW_HISTOGRAM_UPDATE_INTERVAL_MSEC"
	EnvLogLevel       = "FVIEW_HISTOGRAM_LOG_LEVEL"
	EnvPlotWidth      = "FVIEW_HISTOGRAM_PLOT_WIDTH"
	EnvPlotHeight     = "FVIEW_HISTOGRAM_PLOT_HEIGHT"
)

// Config is the complete runtime configuration.
type Config struct {
	// UpdateIntervalMsec is the minimum gap between histogram recomputations.
	UpdateIntervalMsec int

	LogLevel string

	PlotWidth  int
	PlotHeight int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UpdateIntervalMsec: DefaultUpdateIntervalMsec,
		LogLevel:           DefaultLogLevel,
		PlotWidth:          DefaultPlotWidth,
		PlotHeight:         DefaultPlotHeight,
	}
}

// FromEnv returns the defaults overridden by any environment variables set.
// Malformed numeric values are reported as errors rather than ignored.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvUpdateInterval, &cfg.UpdateIntervalMsec},
		{EnvPlotWidth, &cfg.PlotWidth},
		{EnvPlotHeight, &cfg.PlotHeight},
	}
	for _, v := range ints {
		raw, ok := lookup(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", v.key, raw, err)
		}
		*v.dst = n
	}

	if lvl, ok := lookup(EnvLogLevel); ok && lvl != "" {
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.UpdateIntervalMsec <= 0 {
		return fmt.Errorf("update interval must be positive, got %d ms", c.UpdateIntervalMsec)
	}
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.PlotWidth, c.PlotHeight)
	}
	return nil
}

// UpdateInterval returns UpdateIntervalMsec as a duration.
func (c Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalMsec) * time.Millisecond
}
