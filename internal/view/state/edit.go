package state

import (
	"github.com/cedarcreek/trailmap/internal/trail"
)

// EditAction is an undoable change to the trail document.
type EditAction interface {
	Do(t *trail.Trail)
	Undo(t *trail.Trail)
	Description() string
}

// EditMode selects what a tap on the editor preview does.
type EditMode int

const (
	ModePan   EditMode = iota // taps select markers, drags pan
	ModePlace                 // next tap places a marker for the current waypoint
)

// EditState manages editor modes, the undo/redo stacks and the dirty
// flag driving the save affordance.
type EditState struct {
	Mode  EditMode
	Dirty bool

	undoStack []EditAction
	redoStack []EditAction
}

// NewEditState creates an empty edit state.
func NewEditState() *EditState {
	return &EditState{}
}

// Execute performs an action and pushes it onto the undo stack.
func (e *EditState) Execute(action EditAction, t *trail.Trail) {
	action.Do(t)
	e.undoStack = append(e.undoStack, action)
	e.redoStack = nil
	e.Dirty = true
}

// Undo reverts the most recent action.
func (e *EditState) Undo(t *trail.Trail) {
	if len(e.undoStack) == 0 {
		return
	}
	action := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	action.Undo(t)
	e.redoStack = append(e.redoStack, action)
	e.Dirty = true
}

// Redo re-applies the most recently undone action.
func (e *EditState) Redo(t *trail.Trail) {
	if len(e.redoStack) == 0 {
		return
	}
	action := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	action.Do(t)
	e.undoStack = append(e.undoStack, action)
	e.Dirty = true
}

// CanUndo reports whether the undo stack is non-empty.
func (e *EditState) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (e *EditState) CanRedo() bool { return len(e.redoStack) > 0 }

// PlaceMarkerAction appends a marker position to a waypoint.
type PlaceMarkerAction struct {
	Waypoint int
	Pos      trail.Position
}

func (a *PlaceMarkerAction) Do(t *trail.Trail) {
	if wp := t.Waypoint(a.Waypoint); wp != nil {
		wp.Markers = append(wp.Markers, a.Pos)
	}
}

func (a *PlaceMarkerAction) Undo(t *trail.Trail) {
	wp := t.Waypoint(a.Waypoint)
	if wp == nil || len(wp.Markers) == 0 {
		return
	}
	wp.Markers = wp.Markers[:len(wp.Markers)-1]
}

func (a *PlaceMarkerAction) Description() string { return "Place marker" }

// MoveMarkerAction repositions one marker instance of a waypoint.
type MoveMarkerAction struct {
	Waypoint int
	Slot     int
	Old      trail.Position
	New      trail.Position
}

func (a *MoveMarkerAction) Do(t *trail.Trail) {
	if wp := t.Waypoint(a.Waypoint); wp != nil && a.Slot < len(wp.Markers) {
		wp.Markers[a.Slot] = a.New
	}
}

func (a *MoveMarkerAction) Undo(t *trail.Trail) {
	if wp := t.Waypoint(a.Waypoint); wp != nil && a.Slot < len(wp.Markers) {
		wp.Markers[a.Slot] = a.Old
	}
}

func (a *MoveMarkerAction) Description() string { return "Move marker" }

// RemoveMarkerAction deletes one marker instance of a waypoint.
type RemoveMarkerAction struct {
	Waypoint int
	Slot     int
	Old      trail.Position
}

func (a *RemoveMarkerAction) Do(t *trail.Trail) {
	wp := t.Waypoint(a.Waypoint)
	if wp == nil || a.Slot >= len(wp.Markers) {
		return
	}
	wp.Markers = append(wp.Markers[:a.Slot], wp.Markers[a.Slot+1:]...)
}

func (a *RemoveMarkerAction) Undo(t *trail.Trail) {
	wp := t.Waypoint(a.Waypoint)
	if wp == nil || a.Slot > len(wp.Markers) {
		return
	}
	wp.Markers = append(wp.Markers[:a.Slot], append([]trail.Position{a.Old}, wp.Markers[a.Slot:]...)...)
}

func (a *RemoveMarkerAction) Description() string { return "Remove marker" }
