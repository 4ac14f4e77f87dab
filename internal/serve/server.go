// Package serve implements the trail preview server: static serving of
// the trails directory plus a WebSocket channel that tells connected
// clients to reload when files change on disk, so edits show up
// without manual refreshing.
package serve

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/cedarcreek/trailmap/internal/debug"
)

// debounceWindow batches rapid filesystem events (editors write several
// times per save) into one reload notification.
const debounceWindow = 200 * time.Millisecond

// Server serves a trails directory with live reload.
type Server struct {
	dir      string
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// New creates a server over the given trails directory.
func New(dir string) *Server {
	return &Server{
		dir: dir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ListenAndServe starts the watcher and blocks serving HTTP.
func (s *Server) ListenAndServe(addr string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("serve: watcher: %w", err)
	}
	defer watcher.Close()
	if err := s.watchTree(watcher); err != nil {
		return err
	}
	go s.watchLoop(watcher)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.dir)))
	mux.HandleFunc("/live", s.handleLive)
	return http.ListenAndServe(addr, mux)
}

// watchTree registers the directory and all subdirectories; fsnotify
// watches are not recursive.
func (s *Server) watchTree(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("serve: watch %s: %w", p, err)
			}
		}
		return nil
	})
}

func (s *Server) watchLoop(watcher *fsnotify.Watcher) {
	var pending []string
	var timer *time.Timer
	var mu sync.Mutex

	flush := func() {
		mu.Lock()
		paths := pending
		pending = nil
		mu.Unlock()
		if len(paths) > 0 {
			s.broadcastReload(paths)
		}
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ShouldNotify(ev) {
				continue
			}
			// New directories need their own watch.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			mu.Lock()
			pending = append(pending, ev.Name)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, flush)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			debug.Log("serve: watch error: %v", err)
		}
	}
}

// ShouldNotify filters events worth a client reload: content changes
// to real files, not chmods, editor temp files or our own partial
// writes.
func ShouldNotify(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}

type reloadMessage struct {
	Type  string   `json:"type"`
	Paths []string `json:"paths"`
}

func (s *Server) broadcastReload(paths []string) {
	msg, err := json.Marshal(reloadMessage{Type: "reload", Paths: paths})
	if err != nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			debug.Log("serve: drop client: %v", err)
		}
	}
	debug.Log("serve: reload broadcast for %d path(s) to %d client(s)", len(paths), len(s.clients))
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Log("serve: upgrade: %v", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
