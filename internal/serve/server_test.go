package serve

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"document write", fsnotify.Event{Name: "trails/a/trail.json", Op: fsnotify.Write}, true},
		{"photo added", fsnotify.Event{Name: "trails/a/photos/1/walk.jpg", Op: fsnotify.Create}, true},
		{"file removed", fsnotify.Event{Name: "trails/a/map.png", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "trails/a/trail.json", Op: fsnotify.Chmod}, false},
		{"store temp file", fsnotify.Event{Name: "trails/a/trail.json.tmp", Op: fsnotify.Write}, false},
		{"editor backup", fsnotify.Event{Name: "trails/a/trail.json~", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "trails/.DS_Store", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := ShouldNotify(tt.ev); got != tt.want {
			t.Errorf("%s: ShouldNotify(%v %v) = %v, want %v", tt.name, tt.ev.Name, tt.ev.Op, got, tt.want)
		}
	}
}
