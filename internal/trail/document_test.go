package trail

import (
	"errors"
	"testing"

	"github.com/cedarcreek/trailmap/internal/store"
)

func sampleTrail() *Trail {
	return &Trail{
		Name:        "fern-creek",
		Title:       "Fern Creek Trail",
		Description: "A short woodland loop.",
		Map: MapAssets{
			BaseImage:    "map.png",
			RouteOverlay: "route.png",
			BaseWidth:    1521,
			BaseHeight:   2021,
			AnchorX:      61,
			AnchorY:      322,
		},
		Features: []Feature{
			{ID: "bench", Icon: "bench.png", Title: "Bench"},
			{ID: "oak", Icon: "oak.png", Title: "Old Oak"},
		},
		Waypoints: []Waypoint{
			{
				Index:      1,
				Title:      "Trailhead",
				Markers:    []Position{{X: 120, Y: 80}},
				Symbol:     "1",
				Colour:     "#2d6a4f",
				TextColour: "#ffffff",
				FeatureIDs: []string{"bench"},
				Photos:     []string{"p1.jpg"},
			},
			{
				Index:   2,
				Title:   "Twin Oaks",
				Markers: []Position{{X: 772, Y: 540}, {X: 790, Y: 560}},
				Symbol:  "2",
				Colour:  "#2d6a4f",
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode(sampleTrail())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Name != "fern-creek" || len(got.Waypoints) != 2 {
		t.Errorf("decoded %q with %d waypoints", got.Name, len(got.Waypoints))
	}
	if wp := got.Waypoint(2); wp == nil || len(wp.Markers) != 2 {
		t.Errorf("waypoint 2 lost its marker positions: %+v", wp)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Trail)
	}{
		{"missing name", func(tr *Trail) { tr.Name = "" }},
		{"zero base dimensions", func(tr *Trail) { tr.Map.BaseWidth = 0 }},
		{"duplicate waypoint index", func(tr *Trail) { tr.Waypoints[1].Index = 1 }},
		{"non-positive waypoint index", func(tr *Trail) { tr.Waypoints[0].Index = 0 }},
		{"waypoint without markers", func(tr *Trail) { tr.Waypoints[0].Markers = nil }},
		{"unknown feature id", func(tr *Trail) { tr.Waypoints[0].FeatureIDs = []string{"nope"} }},
	}

	for _, tt := range tests {
		tr := sampleTrail()
		tt.mutate(tr)
		if err := tr.Validate(); err == nil {
			t.Errorf("%s: Validate accepted an invalid document", tt.name)
		}
	}
	if err := sampleTrail().Validate(); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}
}

func newTestStore(t *testing.T) *store.FS {
	t.Helper()
	s, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return s
}

func TestLoadSaveConflict(t *testing.T) {
	s := newTestStore(t)

	data, _ := Encode(sampleTrail())
	if _, err := s.Write("trails/fern-creek/trail.json", data, ""); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	doc, err := Load(s, "trails/fern-creek")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc.Trail.Waypoints[0].Title = "New Trailhead"
	if err := doc.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second editor holding the old revision must hit the conflict
	// error, never silently overwrite.
	stale := &Document{Trail: sampleTrail(), Path: doc.Path, Rev: "deadbeef"}
	err = stale.Save(s)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("stale save: err = %v, want ErrConflict", err)
	}
}

func TestListSkipsInvalidDocuments(t *testing.T) {
	s := newTestStore(t)

	good, _ := Encode(sampleTrail())
	if _, err := s.Write("trails/fern-creek/trail.json", good, ""); err != nil {
		t.Fatalf("write good: %v", err)
	}
	if _, err := s.Write("trails/broken/trail.json", []byte("{not json"), ""); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if _, err := s.Write("trails/ignored/readme.txt", []byte("hi"), ""); err != nil {
		t.Fatalf("write extra: %v", err)
	}

	docs, err := List(s, "trails")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].Trail.Name != "fern-creek" {
		t.Errorf("List returned %d docs, want only fern-creek", len(docs))
	}
}

func TestLoadMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := Load(s, "trails/none"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Load missing: err = %v, want ErrNotFound", err)
	}
}
