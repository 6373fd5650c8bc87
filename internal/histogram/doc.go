// Package histogram implements the live image histogram plugin.
//
// The plugin receives camera frames from a host and, at most once per
// update interval, recomputes a fixed-bin histogram of pixel intensities.
// The result is exposed through Snapshot and Subscribe so a plot
// collaborator can draw it in its own widget; the plugin never draws
// overlays on the video frame itself.
//
// # Lifecycle
//
//	uninitialized -> OnSessionStart -> ready -> OnFrame* -> OnSessionStop -> uninitialized
//
// OnSessionStart fixes the pixel format and the 50 bin edges spanning 0..255
// for the duration of a camera session. OnFrame is a no-op while the display
// is hidden, skips work while the update interval has not elapsed, and
// otherwise recomputes the counts.
//
// # Pixel Formats
//
// Only MONO8 (8-bit monochrome) buffers are histogrammed. Any other format
// logs a warning on each visible frame and leaves the counts untouched; the
// plugin keeps running.
//
// # Binning
//
// 50 edges give 49 bins. Bin i covers [edge[i], edge[i+1]) and the last bin
// also includes 255. Counting goes through bild's 256-entry per-intensity
// histogram, which is then folded into the bins with a lookup table built
// once per session.
//
// # Timing
//
// Elapsed time is taken from Frame.Timestamp. Timestamps produced by
// time.Now carry a monotonic reading, so wall clock adjustments do not
// affect the throttle.
package histogram
