package histogram

import (
	"log/slog"
	"sync"
	"time"

	applog "github.com/ironsheep/fview-histogram/internal/log"
)

// PluginName is the name the histogram plugin registers under.
const PluginName = "image histogram"

// DefaultInterval is the minimum gap between two histogram recomputations.
const DefaultInterval = 100 * time.Millisecond

// Updater is the histogram plugin. It implements Plugin and SessionStopper.
//
// State is guarded by a mutex so renderers on other goroutines may call
// Snapshot while frames are being processed. Observers registered with
// Subscribe are called synchronously, outside the lock, after every
// successful update.
type Updater struct {
	mu       sync.RWMutex
	interval time.Duration
	logger   *slog.Logger

	started     bool
	session     SessionInfo
	edges       []float64
	table       binTable
	counts      []float64
	lastUpdate  time.Time
	updates     uint64
	warnings    uint64
	observers   []observer
	nextObserve int
}

// observer is a Subscribe callback. Observers are kept in subscription order.
type observer struct {
	id int
	fn func(Snapshot)
}

// Option configures an Updater.
type Option func(*Updater)

// WithInterval sets the throttle interval. Non-positive values disable throttling.
func WithInterval(d time.Duration) Option {
	return func(u *Updater) {
		u.interval = d
	}
}

// WithLogger sets the logger used for unsupported-format warnings.
func WithLogger(l *slog.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.logger = l
		}
	}
}

// NewUpdater creates a histogram plugin in the uninitialized state.
func NewUpdater(opts ...Option) *Updater {
	u := &Updater{
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = applog.With("plugin", PluginName)
	}
	return u
}

// Name returns PluginName.
func (u *Updater) Name() string {
	return PluginName
}

// Interval returns the current throttle interval.
func (u *Updater) Interval() time.Duration {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.interval
}

// SetInterval changes the throttle interval. It takes effect on the next frame.
func (u *Updater) SetInterval(d time.Duration) {
	u.mu.Lock()
	u.interval = d
	u.mu.Unlock()
}

// OnSessionStart records the pixel format and resets the bin edges and counts.
// The sensor dimensions are kept for reporting only.
func (u *Updater) OnSessionStart(info SessionInfo) {
	edges := DefaultEdges()

	u.mu.Lock()
	u.started = true
	u.session = info
	u.edges = edges
	u.table = newBinTable(edges)
	u.counts = make([]float64, len(edges)-1)
	u.lastUpdate = time.Time{}
	u.updates = 0
	u.warnings = 0
	u.mu.Unlock()

	u.logger.Debug("camera session started",
		"cam_id", info.CamID,
		"pixel_format", string(info.PixelFormat),
		"max_width", info.MaxWidth,
		"max_height", info.MaxHeight)
}

// OnSessionStop discards all session state.
func (u *Updater) OnSessionStop() {
	u.mu.Lock()
	camID := u.session.CamID
	u.started = false
	u.session = SessionInfo{}
	u.edges = nil
	u.counts = nil
	u.lastUpdate = time.Time{}
	u.updates = 0
	u.warnings = 0
	u.mu.Unlock()

	u.logger.Debug("camera session stopped", "cam_id", camID)
}

// OnFrame recomputes the histogram when the display is visible and the
// update interval has elapsed since the last update. It never returns
// overlays; the histogram is drawn in a separate widget.
func (u *Updater) OnFrame(frame Frame, visible bool) ([]Point, []LineSegment) {
	if !visible {
		return nil, nil
	}

	now := frame.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	u.mu.Lock()
	if !u.lastUpdate.IsZero() && now.Sub(u.lastUpdate) < u.interval {
		u.mu.Unlock()
		return nil, nil
	}

	format := u.session.PixelFormat
	if !u.started || !format.Supported() {
		u.warnings++
		u.mu.Unlock()
		u.logger.Warn("histogram for pixel format not implemented",
			"pixel_format", string(format),
			"frame", frame.Number)
		return nil, nil
	}

	u.counts = countMono8(frame.Data, u.table, len(u.edges)-1)
	u.lastUpdate = now
	u.updates++
	snap := u.snapshotLocked()
	observers := append([]observer(nil), u.observers...)
	u.mu.Unlock()

	for _, o := range observers {
		o.fn(snap)
	}
	return nil, nil
}

// Snapshot returns a copy of the current histogram state.
func (u *Updater) Snapshot() Snapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshotLocked()
}

func (u *Updater) snapshotLocked() Snapshot {
	return Snapshot{
		CamID:       u.session.CamID,
		PixelFormat: u.session.PixelFormat,
		Edges:       append([]float64(nil), u.edges...),
		Counts:      append([]float64(nil), u.counts...),
		LastUpdate:  u.lastUpdate,
		Updates:     u.updates,
		Warnings:    u.warnings,
		Ready:       u.updates > 0,
	}
}

// Subscribe registers fn to receive a snapshot after every successful
// update. Observers are notified in the order they subscribed. The
// returned function removes the subscription.
func (u *Updater) Subscribe(fn func(Snapshot)) (cancel func()) {
	u.mu.Lock()
	id := u.nextObserve
	u.nextObserve++
	u.observers = append(u.observers, observer{id: id, fn: fn})
	u.mu.Unlock()

	return func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		for i, o := range u.observers {
			if o.id == id {
				u.observers = append(u.observers[:i:i], u.observers[i+1:]...)
				return
			}
		}
	}
}

var (
	_ Plugin         = (*Updater)(nil)
	_ SessionStopper = (*Updater)(nil)
)
