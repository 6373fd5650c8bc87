package frames

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrCaptureUnavailable is returned by OpenCamera in builds without the gocv tag.
var ErrCaptureUnavailable = errors.New("camera capture requires a build with the gocv tag")

// Source yields MONO8 frames until it returns io.EOF.
type Source interface {
	Next() (*Mono8Frame, error)
	Close() error
}

// frameExtensions are the file types ListFrames picks up.
var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ListFrames returns the image files directly inside dir, sorted by name.
func ListFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// DirSource replays a list of image files as frames.
type DirSource struct {
	cache *FrameCache
	paths []string
	next  int
}

// NewDirSource creates a source over every image in dir.
func NewDirSource(dir string, cache *FrameCache) (*DirSource, error) {
	paths, err := ListFrames(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frame images in %s", dir)
	}
	if cache == nil {
		cache = NewFrameCache()
	}
	return &DirSource{cache: cache, paths: paths}, nil
}

// Len returns the total number of frames.
func (s *DirSource) Len() int {
	return len(s.paths)
}

// Next decodes the next file. It returns io.EOF after the last one.
func (s *DirSource) Next() (*Mono8Frame, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	f, err := s.cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Close releases cached frames.
func (s *DirSource) Close() error {
	for _, p := range s.paths {
		s.cache.Evict(p)
	}
	return nil
}
