package thumbs

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/cedarcreek/trailmap/internal/assets"
)

// Icon sizes for the installable app shell: two launcher sizes, the
// 180px apple-touch icon (flattened onto white, iOS dislikes alpha)
// and a 32px favicon.
var (
	launcherSizes = []int{192, 512}
	appleSize     = 180
	faviconSize   = 32
)

// GenerateIcons renders the icon set from a logo image into outDir.
func GenerateIcons(logoPath, outDir string) error {
	logo, err := assets.LoadImage(logoPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("thumbs: create %s: %w", outDir, err)
	}

	for _, size := range launcherSizes {
		img := resize(logo, size)
		if err := writePNG(filepath.Join(outDir, fmt.Sprintf("icon-%d.png", size)), img); err != nil {
			return err
		}
	}

	apple := flattenOnWhite(resize(logo, appleSize))
	if err := writePNG(filepath.Join(outDir, "apple-touch-icon.png"), apple); err != nil {
		return err
	}

	return writePNG(filepath.Join(outDir, fmt.Sprintf("favicon-%d.png", faviconSize)), resize(logo, faviconSize))
}

func resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func flattenOnWhite(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("thumbs: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("thumbs: encode %s: %w", path, err)
	}
	return nil
}
