// Package assets loads a trail's raster assets: the base map image,
// the route overlay and waypoint photos. The viewport engine is gated
// on the natural dimensions discovered here; nothing downstream ever
// runs scale math on a size that has not been decoded.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	// Decoders for the formats a trail folder may contain.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/cedarcreek/trailmap/internal/trail"
)

// MapImages holds the decoded map assets for one trail together with
// their natural pixel dimensions.
type MapImages struct {
	Base   image.Image
	Route  image.Image // nil when the trail has no route overlay
	BaseW  int
	BaseH  int
	Anchor image.Point
}

// LoadImage decodes one image file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadMap decodes the base image and route overlay referenced by a
// trail document. The natural base-image dimensions win over whatever
// the document claims; a mismatch is reported so the document can be
// fixed.
func LoadMap(dir string, m trail.MapAssets) (*MapImages, error) {
	base, err := LoadImage(filepath.Join(dir, m.BaseImage))
	if err != nil {
		return nil, err
	}
	b := base.Bounds()
	mi := &MapImages{
		Base:   base,
		BaseW:  b.Dx(),
		BaseH:  b.Dy(),
		Anchor: image.Pt(m.AnchorX, m.AnchorY),
	}
	if mi.BaseW != m.BaseWidth || mi.BaseH != m.BaseHeight {
		return nil, fmt.Errorf("assets: %s is %dx%d but the trail document says %dx%d",
			m.BaseImage, mi.BaseW, mi.BaseH, m.BaseWidth, m.BaseHeight)
	}
	if m.RouteOverlay != "" {
		route, err := LoadImage(filepath.Join(dir, m.RouteOverlay))
		if err != nil {
			return nil, err
		}
		mi.Route = route
	}
	return mi, nil
}

// Cache memoizes decoded images by path, for photo lists the user
// flips back and forth through.
type Cache struct {
	mu     sync.Mutex
	images map[string]image.Image
}

func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Get returns the decoded image at path, loading it on first use.
func (c *Cache) Get(path string) (image.Image, error) {
	c.mu.Lock()
	if img, ok := c.images[path]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}
