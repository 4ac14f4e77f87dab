package thumbs

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
)

func TestCropSquare(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"landscape", 400, 300, image.Rect(50, 0, 350, 300)},
		{"portrait", 300, 400, image.Rect(0, 50, 300, 350)},
		{"square", 200, 200, image.Rect(0, 0, 200, 200)},
		{"odd landscape", 401, 300, image.Rect(50, 0, 350, 300)},
	}

	for _, tt := range tests {
		got := CropSquare(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("%s: CropSquare(%d, %d) = %v, want %v", tt.name, tt.w, tt.h, got, tt.want)
		}
		if got.Dx() != got.Dy() {
			t.Errorf("%s: crop %v is not square", tt.name, got)
		}
	}
}

func TestThumbnailSizeAndContent(t *testing.T) {
	// Landscape source: left half red, right half blue. The centered
	// crop keeps parts of both halves.
	src := image.NewNRGBA(image.Rect(0, 0, 320, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 320; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 160 {
				c = color.NRGBA{B: 255, A: 255}
			}
			src.SetNRGBA(x, y, c)
		}
	}

	thumb := Thumbnail(src, 160)
	if b := thumb.Bounds(); b.Dx() != 160 || b.Dy() != 160 {
		t.Fatalf("thumbnail is %dx%d, want 160x160", b.Dx(), b.Dy())
	}

	left := thumb.At(10, 80).(color.NRGBA)
	right := thumb.At(150, 80).(color.NRGBA)
	if left.R < 200 || right.B < 200 {
		t.Errorf("crop lost the halves: left %+v right %+v", left, right)
	}
}

func TestCollectAndRun(t *testing.T) {
	photos := t.TempDir()
	wpDir := filepath.Join(photos, "1")
	if err := os.MkdirAll(wpDir, 0o755); err != nil {
		t.Fatal(err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	f, err := os.Create(filepath.Join(wpDir, "walk.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	// A non-image file must be ignored.
	if err := os.WriteFile(filepath.Join(wpDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs, err := Collect(photos)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("Collect found %d jobs, want 1", len(jobs))
	}

	results := Run(Config{Size: 32, Workers: 2}, jobs)
	if results[0].Error != "" {
		t.Fatalf("Run: %s", results[0].Error)
	}
	if _, err := os.Stat(filepath.Join(wpDir, SubdirName, "walk.webp")); err != nil {
		t.Errorf("thumbnail not written: %v", err)
	}
}

func TestRunReportsProgress(t *testing.T) {
	photos := t.TempDir()
	wpDir := filepath.Join(photos, "1")
	if err := os.MkdirAll(wpDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		f, err := os.Create(filepath.Join(wpDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 8, 8))); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	jobs, err := Collect(photos)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var mu sync.Mutex
	var calls []int
	Run(Config{
		Size:    8,
		Workers: 2,
		Progress: func(done, total int) {
			if total != len(jobs) {
				t.Errorf("progress total = %d, want %d", total, len(jobs))
			}
			mu.Lock()
			calls = append(calls, done)
			mu.Unlock()
		},
	}, jobs)

	if len(calls) != len(jobs) {
		t.Fatalf("progress called %d times, want %d", len(calls), len(jobs))
	}
	sort.Ints(calls)
	for i, done := range calls {
		if done != i+1 {
			t.Errorf("completion counts %v, want 1..%d each once", calls, len(jobs))
			break
		}
	}
}
