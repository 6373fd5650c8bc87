package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/fview-histogram/internal/config"
	"github.com/ironsheep/fview-histogram/internal/histogram"
)

// writeFrames writes n uniform gray PNG frames of the given intensity into dir.
func writeFrames(t *testing.T, dir string, n int, gray uint8) {
	t.Helper()
	for i := 0; i < n; i++ {
		img := image.NewGray(image.Rect(0, 0, 8, 4))
		for p := range img.Pix {
			img.Pix[p] = gray
		}
		f, err := os.Create(filepath.Join(dir, "frame"+string(rune('a'+i))+".png"))
		if err != nil {
			t.Fatalf("failed to create frame: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("failed to encode frame: %v", err)
		}
		f.Close()
	}
}

func TestRunReplay(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	writeFrames(t, dir, 5, 255)
	out := filepath.Join(t.TempDir(), "hist.png")

	var stdout bytes.Buffer
	// 20 fps puts frames 50ms apart, so with a 100ms interval
	// frames 1, 3 and 5 update.
	err := runReplay(ReplayOptions{Dir: dir, FPS: 20, OutPath: out}, &stdout, io.Discard)
	if err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}

	var snap histogram.Snapshot
	if err := json.Unmarshal(stdout.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot JSON: %v", err)
	}
	if snap.Updates != 3 {
		t.Errorf("updates: got %d, want 3", snap.Updates)
	}
	if snap.Counts[len(snap.Counts)-1] != 32 {
		t.Errorf("last bin: got %f, want 32", snap.Counts[len(snap.Counts)-1])
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("plot is not a PNG: %v", err)
	}
}

func TestRunReplay_Hidden(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	writeFrames(t, dir, 2, 0)

	var stdout bytes.Buffer
	if err := runReplay(ReplayOptions{Dir: dir, FPS: 1, Hidden: true}, &stdout, io.Discard); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}

	var snap histogram.Snapshot
	if err := json.Unmarshal(stdout.Bytes(), &snap); err != nil {
		t.Fatalf("invalid snapshot JSON: %v", err)
	}
	if snap.Ready || snap.Updates != 0 {
		t.Errorf("hidden replay should not update: %+v", snap)
	}
}

func TestRunReplay_Errors(t *testing.T) {
	cfg = config.Default()

	tests := []struct {
		name string
		opts ReplayOptions
	}{
		{"zero fps", ReplayOptions{Dir: t.TempDir(), FPS: 0}},
		{"empty dir", ReplayOptions{Dir: t.TempDir(), FPS: 10}},
		{"missing dir", ReplayOptions{Dir: "/nonexistent/frames", FPS: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runReplay(tt.opts, io.Discard, io.Discard); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResolveConfig_Flags(t *testing.T) {
	t.Setenv(config.EnvUpdateInterval, "250")

	cmd := rootCmd
	if err := cmd.ParseFlags([]string{"--log-level", "debug"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	c, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if c.UpdateIntervalMsec != 250 {
		t.Errorf("interval: got %d, want 250 from env", c.UpdateIntervalMsec)
	}
	if c.LogLevel != "debug" {
		t.Errorf("log level: got %s, want debug from flag", c.LogLevel)
	}
}
