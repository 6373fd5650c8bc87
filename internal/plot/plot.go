// Package plot renders histogram snapshots as PNG bar charts.
//
// It stands in for the viewer's plot widget: it reads a histogram.Snapshot
// and never touches the plugin state. Bars are coloured along an intensity
// ramp so dark bins read as dark and bright bins as bright.
package plot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ironsheep/fview-histogram/internal/histogram"
)

// DefaultTitle is the chart title.
const DefaultTitle = "Image intensity histogram"

// labelEvery controls how many bars share one x-axis label.
const labelEvery = 8

// Ramp endpoints, dark to bright.
var (
	rampDark   = mustHex("#30123b")
	rampBright = mustHex("#fde725")
)

// mustHex parses a constant hex colour and panics if it is malformed.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("plot: bad colour %q: %v", s, err))
	}
	return c
}

// Options controls chart geometry.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns an 800x200 chart.
func DefaultOptions() Options {
	return Options{
		Width:  800,
		Height: 200,
		Title:  DefaultTitle,
	}
}

// RenderResult contains a rendered chart encoded as base64 PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Ready       bool   `json:"ready"`
}

// Render draws the snapshot and returns it as a base64 PNG.
func Render(snap histogram.Snapshot, opts Options) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, snap, opts); err != nil {
		return nil, err
	}

	return &RenderResult{
		Width:       opts.Width,
		Height:      opts.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Ready:       snap.Ready,
	}, nil
}

// WritePNG renders the snapshot into a file.
func WritePNG(path string, snap histogram.Snapshot, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := RenderPNG(f, snap, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPNG writes the chart for snap to w.
//
// A snapshot without counts is drawn as an empty histogram over the default
// bins with a fixed 0..1 y range.
func RenderPNG(w io.Writer, snap histogram.Snapshot, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	edges, counts := snap.Edges, snap.Counts
	if len(counts) == 0 || len(edges) != len(counts)+1 {
		edges = histogram.DefaultEdges()
		counts = make([]float64, len(edges)-1)
	}

	peak := 0.0
	for _, c := range counts {
		peak = math.Max(peak, c)
	}
	yMax := 1.0
	if peak > 0 {
		yMax = peak * 1.05
	}

	bars := barValues(histogram.Snapshot{Edges: edges, Counts: counts})

	barWidth, spacing := barGeometry(opts.Width, len(bars))
	bc := chart.BarChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// barValues builds one bar per bin. Every labelEvery-th bar is labelled
// with its bin centre.
func barValues(snap histogram.Snapshot) []chart.Value {
	centers := snap.Centers()
	colors := Ramp(len(snap.Counts))
	bars := make([]chart.Value, len(snap.Counts))
	for i, c := range snap.Counts {
		label := ""
		if i%labelEvery == 0 && i < len(centers) {
			label = fmt.Sprintf("%.0f", centers[i])
		}
		bars[i] = chart.Value{
			Value: c,
			Label: label,
			Style: chart.Style{
				FillColor:   colors[i],
				StrokeColor: colors[i],
				StrokeWidth: 1,
			},
		}
	}
	return bars
}

// Ramp returns n colours blended in HCL space from dark to bright.
func Ramp(n int) []drawing.Color {
	out := make([]drawing.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, b := rampDark.BlendHcl(rampBright, t).Clamped().RGB255()
		out[i] = drawing.Color{R: r, G: g, B: b, A: 255}
	}
	return out
}

// barGeometry fits n bars into roughly the plot area of a chart of the given width.
func barGeometry(width, n int) (barWidth, spacing int) {
	if n == 0 {
		return 1, 0
	}
	// leave room for the y axis labels and padding
	usable := width - 80
	spacing = 2
	barWidth = usable/n - spacing
	if barWidth < 1 {
		barWidth, spacing = 1, 0
	}
	return barWidth, spacing
}
