package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "sceneview")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }
	return sc
}

func TestGenerateFilename(t *testing.T) {
	sc := fixedCapture("shots")
	want := filepath.Join("shots", "sceneview_2024-03-01_12-30-45.000.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename() = %q, want %q", got, want)
	}
}

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := fixedCapture(dir)

	// 1x2 image: bottom row red, top row blue (GL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q not under %q", path, dir)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b>>8 != 255 || r != 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r>>8, b>>8)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r>>8 != 255 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := fixedCapture(t.TempDir())
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Fatal("expected size mismatch error")
	}
}
