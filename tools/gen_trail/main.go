// Package main generates deterministic sample trail folders for
// development and manual testing: a synthetic base map, a route
// overlay and a trail.json with waypoints spread along the route.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"

	"github.com/cedarcreek/trailmap/internal/store"
	"github.com/cedarcreek/trailmap/internal/trail"
)

// TrailParams defines parameters for trail generation.
type TrailParams struct {
	Seed      int64
	Width     int
	Height    int
	Waypoints int
}

var waypointTitles = []string{
	"Trailhead", "Old Oak", "Creek Crossing", "Lookout Rock",
	"Fern Hollow", "Stone Bridge", "Meadow Gate", "Kiln Ruins",
	"Beaver Pond", "Summit Cairn", "Charcoal Flats", "Springhouse",
}

var featurePool = []trail.Feature{
	{ID: "bench", Icon: "bench", Title: "Bench"},
	{ID: "water", Icon: "water", Title: "Drinking water"},
	{ID: "view", Icon: "view", Title: "Scenic view"},
	{ID: "ruin", Icon: "ruin", Title: "Historic ruin"},
	{ID: "wildlife", Icon: "wildlife", Title: "Wildlife spotting"},
}

func main() {
	seed := flag.Int64("seed", 1, "random seed")
	width := flag.Int("width", 1600, "base map width in pixels")
	height := flag.Int("height", 1200, "base map height in pixels")
	count := flag.Int("waypoints", 8, "number of waypoints")
	out := flag.String("out", "trails/sample", "output trail folder")
	flag.Parse()

	params := TrailParams{
		Seed:      *seed,
		Width:     *width,
		Height:    *height,
		Waypoints: *count,
	}
	if params.Waypoints > len(waypointTitles) {
		params.Waypoints = len(waypointTitles)
	}

	if err := generate(params, *out); err != nil {
		fmt.Fprintf(os.Stderr, "gen_trail: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d waypoints, %dx%d)\n", *out, params.Waypoints, params.Width, params.Height)
}

func generate(params TrailParams, out string) error {
	rng := rand.New(rand.NewSource(params.Seed))

	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	// The route is a wavy left-to-right path; waypoints sit on it.
	points := routePoints(params, rng)

	t := &trail.Trail{
		Name:     fmt.Sprintf("Sample Trail %d", params.Seed),
		Features: featurePool,
		Map: trail.MapAssets{
			BaseImage:    "map.png",
			RouteOverlay: "route.png",
			BaseWidth:    params.Width,
			BaseHeight:   params.Height,
		},
	}

	for i := 0; i < params.Waypoints; i++ {
		p := points[i*(len(points)-1)/maxInt(params.Waypoints-1, 1)]
		wp := trail.Waypoint{
			Index:      i + 1,
			Title:      waypointTitles[i],
			Markers:    []trail.Position{{X: p.X, Y: p.Y}},
			Symbol:     fmt.Sprintf("%d", i+1),
			Colour:     "#2d6a4f",
			TextColour: "#ffffff",
		}
		if rng.Float64() < 0.5 {
			f := featurePool[rng.Intn(len(featurePool))]
			wp.FeatureIDs = []string{f.ID}
		}
		if rng.Float64() < 0.4 {
			wp.Description = "A quiet spot worth a pause."
		}
		t.Waypoints = append(t.Waypoints, wp)
	}

	if err := t.Validate(); err != nil {
		return err
	}
	data, err := trail.Encode(t)
	if err != nil {
		return err
	}
	base, err := encodePNG(baseMap(params))
	if err != nil {
		return err
	}
	route, err := encodePNG(routeOverlay(params, points))
	if err != nil {
		return err
	}

	// All three files land as one change, so a half-written folder is
	// never observable.
	db, err := store.NewFS(out)
	if err != nil {
		return err
	}
	_, err = store.Commit(db, func(store.Revision) ([]store.Op, error) {
		return []store.Op{
			{Path: trail.DocumentName, Data: data},
			{Path: "map.png", Data: base},
			{Path: "route.png", Data: route},
		}, nil
	})
	return err
}

func routePoints(params TrailParams, rng *rand.Rand) []trail.Position {
	n := 200
	points := make([]trail.Position, n)
	amp := float64(params.Height) / 4
	phase := rng.Float64() * 2 * math.Pi
	for i := 0; i < n; i++ {
		fx := float64(i) / float64(n-1)
		x := 80 + fx*float64(params.Width-160)
		y := float64(params.Height)/2 + amp*math.Sin(fx*3*math.Pi+phase)
		points[i] = trail.Position{X: int(x), Y: int(y)}
	}
	return points
}

// baseMap draws a green-tinted gradient with a faint grid, enough
// texture that panning and zooming are visible.
func baseMap(params TrailParams) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, params.Width, params.Height))
	for y := 0; y < params.Height; y++ {
		for x := 0; x < params.Width; x++ {
			g := uint8(150 + 60*y/params.Height)
			c := color.NRGBA{R: uint8(120 + 40*x/params.Width), G: g, B: 110, A: 255}
			if x%100 == 0 || y%100 == 0 {
				c = color.NRGBA{R: 90, G: 120, B: 90, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// routeOverlay draws the path as a thick brown line on transparency.
func routeOverlay(params TrailParams, points []trail.Position) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, params.Width, params.Height))
	stroke := color.NRGBA{R: 120, G: 72, B: 30, A: 255}
	for i := 1; i < len(points); i++ {
		drawSegment(img, points[i-1], points[i], 4, stroke)
	}
	return img
}

func drawSegment(img *image.NRGBA, a, b trail.Position, r int, c color.NRGBA) {
	steps := maxInt(absInt(b.X-a.X), absInt(b.Y-a.Y))
	if steps == 0 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		x := a.X + (b.X-a.X)*s/steps
		y := a.Y + (b.Y-a.Y)*s/steps
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r {
					img.SetNRGBA(x+dx, y+dy, c)
				}
			}
		}
	}
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
