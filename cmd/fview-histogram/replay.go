package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ironsheep/fview-histogram/internal/frames"
	"github.com/ironsheep/fview-histogram/internal/histogram"
	applog "github.com/ironsheep/fview-histogram/internal/log"
	"github.com/ironsheep/fview-histogram/internal/plot"
)

// ReplayOptions controls a replay run.
type ReplayOptions struct {
	Dir     string
	FPS     float64
	OutPath string
	Hidden  bool
}

var replayOpts ReplayOptions

var replayCmd = &cobra.Command{
	Use:   "replay <dir>",
	Short: "Feed a directory of images through the histogram as camera frames",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replayOpts.Dir = args[0]
		return runReplay(replayOpts, cmd.OutOrStdout(), os.Stderr)
	},
}

func init() {
	replayCmd.Flags().Float64Var(&replayOpts.FPS, "fps", 30, "Simulated frame rate used to timestamp frames")
	replayCmd.Flags().StringVarP(&replayOpts.OutPath, "out", "o", "", "Write the final histogram plot to this PNG file")
	replayCmd.Flags().BoolVar(&replayOpts.Hidden, "hidden", false, "Replay with the histogram display hidden")
	rootCmd.AddCommand(replayCmd)
}

// runReplay plays every image in opts.Dir through a host running the
// histogram plugin, then prints the final snapshot as JSON to out.
// Progress goes to progress.
func runReplay(opts ReplayOptions, out, progress io.Writer) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", opts.FPS)
	}

	src, err := frames.NewDirSource(opts.Dir, nil)
	if err != nil {
		return err
	}
	defer src.Close()

	updater, h, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	first, err := src.Next()
	if err != nil {
		return err
	}
	h.StartCamera(histogram.SessionInfo{
		CamID:       filepath.Base(opts.Dir),
		PixelFormat: histogram.Mono8,
		MaxWidth:    first.Width,
		MaxHeight:   first.Height,
	})
	defer h.StopCamera()
	if opts.Hidden {
		if err := h.SetVisible(updater.Name(), false); err != nil {
			return err
		}
	}

	bar := progressbar.NewOptions(src.Len(),
		progressbar.OptionSetDescription("Replaying frames"),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
	)

	gap := time.Duration(float64(time.Second) / opts.FPS)
	base := time.Now()
	frame := first
	for i := 0; ; i++ {
		if _, err := h.ProcessFrame(histogram.Frame{
			Data:      frame.Data,
			Timestamp: base.Add(time.Duration(i) * gap),
		}); err != nil {
			return fmt.Errorf("failed to process frame %d: %w", i+1, err)
		}
		bar.Add(1)

		frame, err = src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	bar.Finish()
	fmt.Fprintln(progress)

	snap := updater.Snapshot()
	applog.Info("replay finished",
		"frames", src.Len(),
		"updates", snap.Updates,
		"warnings", snap.Warnings)

	if opts.OutPath != "" {
		if err := plot.WritePNG(opts.OutPath, snap, plotOptions()); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func plotOptions() plot.Options {
	opts := plot.DefaultOptions()
	opts.Width = cfg.PlotWidth
	opts.Height = cfg.PlotHeight
	return opts
}
