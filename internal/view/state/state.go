// Package state manages viewer and editor UI state.
package state

import (
	"github.com/cedarcreek/trailmap/internal/trail"
)

// State holds the state shared by the surfaces of one window.
type State struct {
	Doc  *trail.Document
	Edit *EditState

	// Current is the index of the focused waypoint, or 0 when the
	// overview is showing (waypoint indices start at 1).
	Current int

	// Status is the transient message line (save results, conflicts).
	Status string

	// PhotoPath is the photo shown in the zoomable overlay, empty when
	// the overlay is closed.
	PhotoPath string
}

// NewState creates state around a loaded trail document.
func NewState(doc *trail.Document) *State {
	return &State{
		Doc:  doc,
		Edit: NewEditState(),
	}
}

// Trail is a shorthand for the underlying document.
func (s *State) Trail() *trail.Trail { return s.Doc.Trail }

// CurrentWaypoint returns the focused waypoint, or nil on the overview.
func (s *State) CurrentWaypoint() *trail.Waypoint {
	if s.Current == 0 {
		return nil
	}
	return s.Doc.Trail.Waypoint(s.Current)
}

// Step moves the focus forward or backward through the waypoint order,
// clamping at the ends.
func (s *State) Step(delta int) {
	wps := s.Doc.Trail.Waypoints
	if len(wps) == 0 {
		return
	}
	pos := -1
	for i, wp := range wps {
		if wp.Index == s.Current {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(wps) {
		pos = len(wps) - 1
	}
	s.Current = wps[pos].Index
}
