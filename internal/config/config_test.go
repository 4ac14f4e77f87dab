package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cedarcreek/trailmap/internal/engine"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.TrailsDir != def.TrailsDir || cfg.WindowWidth != def.WindowWidth {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailmap.yaml")
	doc := `trailsDir: /data/trails
windowWidth: 390
windowHeight: 844
overview:
  zoomFactor: 1.4
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TrailsDir != "/data/trails" || cfg.WindowWidth != 390 {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if cfg.Overview.ZoomFactor != 1.4 {
		t.Errorf("surface override lost: %+v", cfg.Overview)
	}
	// Untouched fields keep their defaults.
	if cfg.ServeAddr != Default().ServeAddr {
		t.Errorf("serveAddr = %q, want default", cfg.ServeAddr)
	}
}

func TestSurfaceApplyKeepsPresetZeros(t *testing.T) {
	base := engine.OverviewConfig()
	got := Surface{ZoomFactor: 1.4}.Apply(base)

	if got.ZoomFactor != 1.4 {
		t.Errorf("ZoomFactor = %v, want 1.4", got.ZoomFactor)
	}
	if got.MarginFactor != base.MarginFactor || got.MaxScale != base.MaxScale {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trailmap.yaml")
	if err := os.WriteFile(path, []byte("windowWidth: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("negative window size accepted")
	}
}
