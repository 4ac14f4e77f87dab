package trail

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/cedarcreek/trailmap/internal/store"
)

// DocumentName is the fixed filename of a trail document inside its
// folder under the store.
const DocumentName = "trail.json"

// Decode parses and validates a trail document.
func Decode(data []byte) (*Trail, error) {
	var t Trail
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("trail: parse: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Encode serializes a trail document for storage.
func Encode(t *Trail) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("trail: encode %s: %w", t.Name, err)
	}
	return append(data, '\n'), nil
}

// Validate checks the structural invariants the viewer and the engine
// rely on.
func (t *Trail) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("trail: missing name")
	}
	if t.Map.BaseImage == "" {
		return fmt.Errorf("trail %s: missing base image reference", t.Name)
	}
	if t.Map.BaseWidth <= 0 || t.Map.BaseHeight <= 0 {
		return fmt.Errorf("trail %s: base image dimensions %dx%d not positive",
			t.Name, t.Map.BaseWidth, t.Map.BaseHeight)
	}
	seen := make(map[int]bool)
	for _, wp := range t.Waypoints {
		// Index 0 is reserved for the overview in the viewer.
		if wp.Index <= 0 {
			return fmt.Errorf("trail %s: waypoint index %d not positive", t.Name, wp.Index)
		}
		if seen[wp.Index] {
			return fmt.Errorf("trail %s: duplicate waypoint index %d", t.Name, wp.Index)
		}
		seen[wp.Index] = true
		if len(wp.Markers) == 0 {
			return fmt.Errorf("trail %s: waypoint %d has no marker positions", t.Name, wp.Index)
		}
	}
	for _, wp := range t.Waypoints {
		for _, id := range wp.FeatureIDs {
			if t.Feature(id) == nil {
				return fmt.Errorf("trail %s: waypoint %d references unknown feature %q",
					t.Name, wp.Index, id)
			}
		}
	}
	return nil
}

// Document is a trail paired with the store revision it was read at,
// needed for a conflict-safe save.
type Document struct {
	Trail *Trail
	Path  string
	Rev   store.Revision
}

// Load reads one trail document from the store.
func Load(s store.Store, dir string) (*Document, error) {
	p := path.Join(dir, DocumentName)
	f, err := s.Read(p)
	if err != nil {
		return nil, fmt.Errorf("trail: read %s: %w", p, err)
	}
	t, err := Decode(f.Data)
	if err != nil {
		return nil, err
	}
	return &Document{Trail: t, Path: p, Rev: f.Rev}, nil
}

// Save writes the document back using the revision it was read at. A
// store.ErrConflict result means someone else changed the file since;
// the caller surfaces that distinctly and never overwrites blindly.
func (d *Document) Save(s store.Store) error {
	data, err := Encode(d.Trail)
	if err != nil {
		return err
	}
	rev, err := s.Write(d.Path, data, d.Rev)
	if err != nil {
		return err
	}
	d.Rev = rev
	return nil
}
