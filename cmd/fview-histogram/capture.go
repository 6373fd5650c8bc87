package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/fview-histogram/internal/frames"
	"github.com/ironsheep/fview-histogram/internal/histogram"
	applog "github.com/ironsheep/fview-histogram/internal/log"
	"github.com/ironsheep/fview-histogram/internal/plot"
)

var (
	captureDevice int
	captureFrames int
	captureOut    string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Histogram live webcam frames (requires a gocv build)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture(cmd)
	},
}

func init() {
	captureCmd.Flags().IntVarP(&captureDevice, "device", "d", 0, "Video device index")
	captureCmd.Flags().IntVarP(&captureFrames, "frames", "n", 100, "Number of frames to capture")
	captureCmd.Flags().StringVarP(&captureOut, "out", "o", "histogram.png", "Write the final histogram plot to this PNG file")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command) error {
	if captureFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", captureFrames)
	}

	cam, err := frames.OpenCamera(captureDevice)
	if err != nil {
		return err
	}
	defer cam.Close()

	updater, h, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	w, ht := cam.Size()
	h.StartCamera(histogram.SessionInfo{
		CamID:       "video" + strconv.Itoa(captureDevice),
		PixelFormat: histogram.Mono8,
		MaxWidth:    w,
		MaxHeight:   ht,
	})
	defer h.StopCamera()

	ctx := cmd.Context()
	for i := 0; i < captureFrames; i++ {
		if ctx.Err() != nil {
			applog.Info("capture interrupted", "frames", i)
			break
		}

		frame, err := cam.Next()
		if err != nil {
			return err
		}
		if _, err := h.ProcessFrame(histogram.Frame{Data: frame.Data, Timestamp: time.Now()}); err != nil {
			return err
		}
	}

	snap := updater.Snapshot()
	applog.Info("capture finished", "updates", snap.Updates, "total", snap.Total())
	if err := plot.WritePNG(captureOut, snap, plotOptions()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", captureOut)
	return nil
}
