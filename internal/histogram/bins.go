package histogram

import (
	"image"
	"sort"

	bildhist "github.com/anthonynsimon/bild/histogram"
)

// Bin layout used for every session.
const (
	NumEdges     = 50
	MinIntensity = 0.0
	MaxIntensity = 255.0
)

// LinearEdges returns n evenly spaced values from lo to hi inclusive.
func LinearEdges(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	edges := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[n-1] = hi
	return edges
}

// DefaultEdges returns the 50 edges spanning 0..255.
func DefaultEdges() []float64 {
	return LinearEdges(MinIntensity, MaxIntensity, NumEdges)
}

// binTable maps an 8-bit intensity to a bin index, or -1 when the
// intensity falls outside the edges.
type binTable [256]int

func newBinTable(edges []float64) binTable {
	var t binTable
	last := len(edges) - 1
	for v := range t {
		x := float64(v)
		switch {
		case last < 1 || x < edges[0] || x > edges[last]:
			t[v] = -1
		case x == edges[last]:
			// last bin is closed on the right
			t[v] = last - 1
		default:
			t[v] = sort.Search(len(edges), func(i int) bool { return edges[i] > x }) - 1
		}
	}
	return t
}

// CountMono8 histograms an 8-bit monochrome buffer into the bins defined
// by edges. The returned slice has len(edges)-1 entries.
func CountMono8(buf []byte, edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	return countMono8(buf, newBinTable(edges), len(edges)-1)
}

func countMono8(buf []byte, table binTable, nbins int) []float64 {
	counts := make([]float64, nbins)
	if len(buf) == 0 {
		return counts
	}

	// Treat the buffer as a single-row gray image; row layout does not
	// matter for a histogram.
	img := &image.Gray{
		Pix:    buf,
		Stride: len(buf),
		Rect:   image.Rect(0, 0, len(buf), 1),
	}
	perValue := bildhist.NewRGBAHistogram(img)

	for v, n := range perValue.R.Bins {
		if n == 0 || v >= len(table) {
			continue
		}
		if bin := table[v]; bin >= 0 {
			counts[bin] += float64(n)
		}
	}
	return counts
}
