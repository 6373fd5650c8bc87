package host

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ironsheep/fview-histogram/internal/histogram"
	applog "github.com/ironsheep/fview-histogram/internal/log"
)

// ErrNoSession is returned when a frame arrives while no camera is running.
var ErrNoSession = errors.New("no camera session")

// Overlay collects the points and line segments plugins asked to draw on a frame.
type Overlay struct {
	Frame  uint64                  `json:"frame"`
	Points []histogram.Point       `json:"points"`
	Lines  []histogram.LineSegment `json:"lines"`
}

// Host owns the plugins for one camera.
//
// Plugin displays start visible. Frames are stamped with time.Now when
// they carry no timestamp, and numbered in arrival order.
type Host struct {
	registry *Registry
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	session *histogram.SessionInfo
	hidden  map[string]bool
	frames  uint64
}

// New creates a host for the plugins in reg.
func New(reg *Registry) *Host {
	return &Host{
		registry: reg,
		logger:   applog.With("component", "host"),
		now:      time.Now,
		hidden:   make(map[string]bool),
	}
}

// Registry returns the plugin registry.
func (h *Host) Registry() *Registry {
	return h.registry
}

// StartCamera announces a new camera session to every plugin. A running
// session is stopped first.
func (h *Host) StartCamera(info histogram.SessionInfo) {
	h.mu.Lock()
	running := h.session != nil
	h.mu.Unlock()
	if running {
		h.StopCamera()
	}

	for _, p := range h.registry.Plugins() {
		p.OnSessionStart(info)
	}

	h.mu.Lock()
	h.session = &info
	h.frames = 0
	h.mu.Unlock()

	h.logger.Info("camera started",
		"cam_id", info.CamID,
		"pixel_format", string(info.PixelFormat),
		"plugins", len(h.registry.Plugins()))
}

// StopCamera ends the current session. Plugins implementing
// histogram.SessionStopper are told to discard their state.
func (h *Host) StopCamera() {
	h.mu.Lock()
	session := h.session
	h.session = nil
	h.mu.Unlock()

	if session == nil {
		return
	}

	for _, p := range h.registry.Plugins() {
		if s, ok := p.(histogram.SessionStopper); ok {
			s.OnSessionStop()
		}
	}
	h.logger.Info("camera stopped", "cam_id", session.CamID)
}

// Session returns the running session, if any.
func (h *Host) Session() (histogram.SessionInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		return histogram.SessionInfo{}, false
	}
	return *h.session, true
}

// SetVisible shows or hides the display of the named plugin.
func (h *Host) SetVisible(name string, visible bool) error {
	if _, ok := h.registry.Get(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	h.mu.Lock()
	h.hidden[name] = !visible
	h.mu.Unlock()
	return nil
}

// Visible reports whether the named plugin's display is shown.
func (h *Host) Visible(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.hidden[name]
}

// ProcessFrame hands a frame to every plugin and gathers their overlays.
func (h *Host) ProcessFrame(frame histogram.Frame) (Overlay, error) {
	h.mu.Lock()
	if h.session == nil {
		h.mu.Unlock()
		return Overlay{}, ErrNoSession
	}
	h.frames++
	if frame.Number == 0 {
		frame.Number = h.frames
	}
	if frame.CamID == "" {
		frame.CamID = h.session.CamID
	}
	hidden := make(map[string]bool, len(h.hidden))
	for k, v := range h.hidden {
		hidden[k] = v
	}
	h.mu.Unlock()

	if frame.Timestamp.IsZero() {
		frame.Timestamp = h.now()
	}

	overlay := Overlay{
		Frame:  frame.Number,
		Points: []histogram.Point{},
		Lines:  []histogram.LineSegment{},
	}
	for _, p := range h.registry.Plugins() {
		points, lines := p.OnFrame(frame, !hidden[p.Name()])
		overlay.Points = append(overlay.Points, points...)
		overlay.Lines = append(overlay.Lines, lines...)
	}
	return overlay, nil
}
