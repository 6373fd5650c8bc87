package frames

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeTestImage encodes img as PNG under dir and returns its path.
func writeTestImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

// uniformRGBA creates an in-memory image filled with one color.
func uniformRGBA(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestToMono8_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 10)
	}

	data, w, h := ToMono8(img)
	if w != 3 || h != 2 {
		t.Fatalf("size: got %dx%d, want 3x2", w, h)
	}
	want := []byte{0, 10, 20, 30, 40, 50}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, data[i], want[i])
		}
	}

	// Result must not alias the source.
	data[0] = 99
	if img.Pix[0] != 0 {
		t.Error("ToMono8 returned a buffer sharing memory with the source")
	}
}

func TestToMono8_GraySubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3))

	data, w, h := ToMono8(sub)
	if w != 2 || h != 2 {
		t.Fatalf("size: got %dx%d, want 2x2", w, h)
	}
	want := []byte{5, 6, 9, 10}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, data[i], want[i])
		}
	}
}

func TestToMono8_Color(t *testing.T) {
	tests := []struct {
		name  string
		color color.RGBA
		want  uint8
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"gray", color.RGBA{128, 128, 128, 255}, 128},
		{"pure red", color.RGBA{255, 0, 0, 255}, 76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, w, h := ToMono8(uniformRGBA(4, 3, tt.color))
			if w != 4 || h != 3 || len(data) != 12 {
				t.Fatalf("unexpected size %dx%d len %d", w, h, len(data))
			}
			for i, v := range data {
				if absDiff(v, tt.want) > 1 {
					t.Fatalf("pixel %d: got %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestToMono8_Empty(t *testing.T) {
	data, w, h := ToMono8(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if len(data) != 0 || w != 0 || h != 0 {
		t.Errorf("expected empty frame, got %dx%d len %d", w, h, len(data))
	}
}

func TestFrameCache_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "frame.png", uniformRGBA(10, 5, color.RGBA{0, 0, 0, 255}))

	cache := NewFrameCache()
	f1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f1.Width != 10 || f1.Height != 5 || len(f1.Data) != 50 {
		t.Errorf("unexpected frame %dx%d len %d", f1.Width, f1.Height, len(f1.Data))
	}

	f2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if f1 != f2 {
		t.Error("second Load did not return cached frame")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestFrameCache_Load_NonExistent(t *testing.T) {
	cache := NewFrameCache()
	if _, err := cache.Load("/nonexistent/path/to/frame.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestFrameCache_Load_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewFrameCache()
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestFrameCache_EvictAndClear(t *testing.T) {
	dir := t.TempDir()
	a := writeTestImage(t, dir, "a.png", uniformRGBA(2, 2, color.White))
	b := writeTestImage(t, dir, "b.png", uniformRGBA(2, 2, color.Black))

	cache := NewFrameCache()
	_, _ = cache.Load(a)
	_, _ = cache.Load(b)

	cache.Evict(a)
	if cache.Len() != 1 {
		t.Errorf("after Evict: got %d, want 1", cache.Len())
	}
	cache.Evict("never-loaded")

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: got %d, want 0", cache.Len())
	}
}

func TestFrameCache_Concurrent(t *testing.T) {
	path := writeTestImage(t, t.TempDir(), "c.png", uniformRGBA(8, 8, color.White))
	cache := NewFrameCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
