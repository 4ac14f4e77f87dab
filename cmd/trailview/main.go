// Command trailview is the walking-trail viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/cedarcreek/trailmap/internal/assets"
	"github.com/cedarcreek/trailmap/internal/config"
	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/engine"
	"github.com/cedarcreek/trailmap/internal/store"
	"github.com/cedarcreek/trailmap/internal/trail"
	"github.com/cedarcreek/trailmap/internal/view"
)

func main() {
	cfgPath := flag.String("config", "trailmap.yaml", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		debug.SetOutput(f)
	}

	doc, dir, err := openTrail(cfg, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	imgs, err := assets.LoadMap(dir, doc.Trail.Map)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(doc.Trail.Name),
			app.Size(unit.Dp(cfg.WindowWidth), unit.Dp(cfg.WindowHeight)),
		)

		application := view.NewApp(doc, dir, imgs,
			cfg.Overview.Apply(engine.OverviewConfig()),
			cfg.Detail.Apply(engine.DetailConfig()))
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// openTrail loads the named trail, or the first one in the catalog
// when no name is given. It returns the document and the trail's
// on-disk folder.
func openTrail(cfg config.Config, name string) (*trail.Document, string, error) {
	db, err := store.NewFS(cfg.TrailsDir)
	if err != nil {
		return nil, "", err
	}
	if name == "" {
		docs, err := trail.List(db, "")
		if err != nil {
			return nil, "", err
		}
		if len(docs) == 0 {
			return nil, "", fmt.Errorf("no trails under %s", cfg.TrailsDir)
		}
		doc := docs[0]
		return doc, filepath.Join(cfg.TrailsDir, filepath.Dir(doc.Path)), nil
	}
	doc, err := trail.Load(db, name)
	if err != nil {
		return nil, "", err
	}
	return doc, filepath.Join(cfg.TrailsDir, name), nil
}
