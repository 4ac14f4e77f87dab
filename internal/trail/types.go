// Package trail defines the trail data document: metadata, categorical
// features and the ordered waypoint list, plus the map asset references
// the viewport engine consumes.
package trail

// Position is a marker coordinate in content space, relative to the
// route overlay anchor, stored as whole pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MapAssets names the fixed files inside a trail's asset folder and
// records their native pixel dimensions and the route anchor offset.
// The viewport engine cannot initialize until these dimensions are
// known.
type MapAssets struct {
	BaseImage    string `json:"baseImage"`
	RouteOverlay string `json:"routeOverlay"`
	BaseWidth    int    `json:"baseWidth"`
	BaseHeight   int    `json:"baseHeight"`
	AnchorX      int    `json:"anchorX"`
	AnchorY      int    `json:"anchorY"`
}

// Feature is a categorical icon/title/description tuple waypoints can
// reference by id.
type Feature struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Waypoint is one stop on the trail. A waypoint may own several marker
// positions (duplicate trees and the like); all of them highlight
// together when the waypoint is current, and the first one is the
// camera target.
type Waypoint struct {
	Index       int        `json:"index"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Markers     []Position `json:"markerPositions"`
	Symbol      string     `json:"markerSymbol"`
	Colour      string     `json:"markerColour"`
	TextColour  string     `json:"markerTextColour"`
	FeatureIDs  []string   `json:"featureIds"`
	Photos      []string   `json:"photos"`
	Link        string     `json:"link,omitempty"`
}

// Trail is the complete document for one trail.
type Trail struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Map         MapAssets  `json:"map"`
	Features    []Feature  `json:"features"`
	Waypoints   []Waypoint `json:"waypoints"`
}

// Waypoint returns the waypoint with the given index, or nil.
func (t *Trail) Waypoint(index int) *Waypoint {
	for i := range t.Waypoints {
		if t.Waypoints[i].Index == index {
			return &t.Waypoints[i]
		}
	}
	return nil
}

// Feature returns the feature with the given id, or nil.
func (t *Trail) Feature(id string) *Feature {
	for i := range t.Features {
		if t.Features[i].ID == id {
			return &t.Features[i]
		}
	}
	return nil
}
