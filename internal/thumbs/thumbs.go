// Package thumbs generates the square photo thumbnails and the app
// icon set for a trail folder. Thumbnails are center-cropped from the
// shortest side, resampled with Catmull-Rom and written as WebP into a
// thumbs/ subdirectory next to the originals.
package thumbs

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"

	"github.com/cedarcreek/trailmap/internal/assets"
)

const (
	// ThumbnailSize is the square edge length in pixels.
	ThumbnailSize = 160

	// SubdirName is where thumbnails land inside a photo folder.
	SubdirName = "thumbs"
)

// CropSquare returns the centered square crop box over the shortest
// side of an image of the given dimensions.
func CropSquare(w, h int) image.Rectangle {
	if w > h {
		left := (w - h) / 2
		return image.Rect(left, 0, left+h, h)
	}
	top := (h - w) / 2
	return image.Rect(0, top, w, top+w)
}

// Thumbnail produces the square thumbnail for one image.
func Thumbnail(src image.Image, size int) image.Image {
	b := src.Bounds()
	crop := CropSquare(b.Dx(), b.Dy()).Add(b.Min)
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

// Job is one photo to thumbnail.
type Job struct {
	Src string
	Dst string
}

// Result is the outcome for one photo.
type Result struct {
	Src   string
	Error string
}

// Config controls a batch run.
type Config struct {
	Size    int
	Workers int

	// Progress, when set, is called after every finished photo with the
	// running completion count. Calls come from worker goroutines.
	Progress func(done, total int)
}

// Collect walks a trail's photos directory (one folder per waypoint)
// and pairs every image with its thumbnail output path.
func Collect(photosDir string) ([]Job, error) {
	entries, err := os.ReadDir(photosDir)
	if err != nil {
		return nil, fmt.Errorf("thumbs: read %s: %w", photosDir, err)
	}

	var jobs []Job
	for _, wp := range entries {
		if !wp.IsDir() {
			continue
		}
		dir := filepath.Join(photosDir, wp.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("thumbs: read %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(f.Name())) {
			case ".jpg", ".jpeg", ".png", ".webp":
			default:
				continue
			}
			stem := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			jobs = append(jobs, Job{
				Src: filepath.Join(dir, f.Name()),
				Dst: filepath.Join(dir, SubdirName, stem+".webp"),
			})
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Src < jobs[j].Src })
	return jobs, nil
}

// Run processes all jobs with a worker pool and returns per-photo
// results in job order.
func Run(cfg Config, jobs []Job) []Result {
	if cfg.Size <= 0 {
		cfg.Size = ThumbnailSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	results := make([]Result, len(jobs))
	var processed atomic.Int64

	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = process(cfg, jobs[idx])
				done := processed.Add(1)
				if cfg.Progress != nil {
					cfg.Progress(int(done), len(jobs))
				}
			}
		}()
	}
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)
	wg.Wait()

	return results
}

func process(cfg Config, job Job) Result {
	src, err := assets.LoadImage(job.Src)
	if err != nil {
		return Result{Src: job.Src, Error: err.Error()}
	}

	thumb := Thumbnail(src, cfg.Size)

	if err := os.MkdirAll(filepath.Dir(job.Dst), 0o755); err != nil {
		return Result{Src: job.Src, Error: err.Error()}
	}
	f, err := os.Create(job.Dst)
	if err != nil {
		return Result{Src: job.Src, Error: err.Error()}
	}
	defer f.Close()
	if err := nativewebp.Encode(f, thumb, nil); err != nil {
		return Result{Src: job.Src, Error: err.Error()}
	}
	return Result{Src: job.Src}
}
