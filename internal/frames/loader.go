package frames

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// Mono8Frame is a decoded grayscale frame.
type Mono8Frame struct {
	Data   []byte
	Width  int
	Height int
}

// FrameCache caches decoded MONO8 frames keyed by file path.
//
// Once an image is loaded, later Load calls for the same path return the
// cached buffer without disk I/O. Cached frames stay in memory until Evict
// or Clear is called.
type FrameCache struct {
	mu     sync.RWMutex
	frames map[string]*Mono8Frame
}

// NewFrameCache creates an empty cache.
func NewFrameCache() *FrameCache {
	return &FrameCache{
		frames: make(map[string]*Mono8Frame),
	}
}

// Load returns the MONO8 frame for path, decoding it on first use.
//
// Supported formats are those registered by disintegration/imaging:
// PNG, JPEG, GIF, BMP and TIFF. EXIF orientation is applied.
//
// The returned frame is shared with the cache and must not be modified.
func (c *FrameCache) Load(path string) (*Mono8Frame, error) {
	c.mu.RLock()
	if f, ok := c.frames[path]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open frame image: %w", err)
	}

	data, w, h := ToMono8(img)
	f := &Mono8Frame{Data: data, Width: w, Height: h}

	c.mu.Lock()
	c.frames[path] = f
	c.mu.Unlock()

	return f, nil
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}

// Evict removes one path from the cache.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	delete(c.frames, path)
	c.mu.Unlock()
}

// Clear removes every cached frame.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]*Mono8Frame)
	c.mu.Unlock()
}

// ToMono8 converts any image to a tightly packed 8-bit grayscale buffer.
//
// *image.Gray input is copied row by row. Everything else goes through
// imaging.Grayscale, which uses ITU-R BT.601 luma weights.
func ToMono8(img image.Image) (data []byte, width, height int) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	data = make([]byte, width*height)
	if width == 0 || height == 0 {
		return data, width, height
	}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			start := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(data[y*width:(y+1)*width], g.Pix[start:start+width])
		}
		return data, width, height
	}

	gray := imaging.Grayscale(img)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width*4]
		for x := 0; x < width; x++ {
			data[y*width+x] = row[x*4]
		}
	}
	return data, width, height
}
