package histogram

import (
	"image"
	"time"
)

// PixelFormat identifies the layout of a camera frame buffer.
type PixelFormat string

// Pixel formats a camera may report. Only Mono8 is histogrammed.
const (
	Mono8  PixelFormat = "MONO8"
	Mono16 PixelFormat = "MONO16"
	RGB8   PixelFormat = "RGB8"
	YUV422 PixelFormat = "YUV422"
	Raw8   PixelFormat = "RAW8"
)

// Supported reports whether histograms are implemented for the format.
func (f PixelFormat) Supported() bool {
	return f == Mono8
}

// SessionInfo describes a camera session as announced by the host.
type SessionInfo struct {
	CamID       string      `json:"cam_id"`
	PixelFormat PixelFormat `json:"pixel_format"`
	MaxWidth    int         `json:"max_width"`
	MaxHeight   int         `json:"max_height"`
}

// Frame is one buffer delivered by the camera.
type Frame struct {
	CamID string

	// Data is the raw row-major buffer of intensity samples.
	Data []byte

	// Offset is the position of the buffer within the sensor (region of interest).
	Offset image.Point

	// Timestamp is when the frame was received. Values from time.Now
	// carry a monotonic reading used by the throttle.
	Timestamp time.Time

	Number uint64
}

// Point is a single overlay point in frame coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineSegment is an overlay line in frame coordinates.
type LineSegment struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Plugin is a frame-processing plugin driven by a camera host.
//
// OnFrame returns points and line segments to draw over the video frame.
// The host calls OnFrame from a single goroutine, one frame at a time.
type Plugin interface {
	Name() string
	OnSessionStart(info SessionInfo)
	OnFrame(frame Frame, visible bool) ([]Point, []LineSegment)
}

// SessionStopper is implemented by plugins that release state when the
// camera stops.
type SessionStopper interface {
	OnSessionStop()
}

// Snapshot is a copy of the histogram state for renderers.
type Snapshot struct {
	CamID       string      `json:"cam_id,omitempty"`
	PixelFormat PixelFormat `json:"pixel_format"`

	// Edges holds the bin edges, len(Counts)+1 values.
	Edges []float64 `json:"edges"`

	// Counts holds the per-bin pixel counts from the last update.
	Counts []float64 `json:"counts"`

	// LastUpdate is zero until the first successful update.
	LastUpdate time.Time `json:"last_update"`

	Updates  uint64 `json:"updates"`
	Warnings uint64 `json:"warnings"`

	// Ready is true once counts hold at least one computed histogram.
	Ready bool `json:"ready"`
}

// Total returns the number of samples counted in the last update.
func (s Snapshot) Total() float64 {
	var sum float64
	for _, c := range s.Counts {
		sum += c
	}
	return sum
}

// Centers returns the midpoint of every bin. The plot labels bars with them.
func (s Snapshot) Centers() []float64 {
	if len(s.Edges) < 2 {
		return nil
	}
	centers := make([]float64, len(s.Edges)-1)
	for i := range centers {
		centers[i] = (s.Edges[i] + s.Edges[i+1]) / 2
	}
	return centers
}
