// Command trailedit is the trail marker editor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/cedarcreek/trailmap/internal/assets"
	"github.com/cedarcreek/trailmap/internal/config"
	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/store"
	"github.com/cedarcreek/trailmap/internal/trail"
	"github.com/cedarcreek/trailmap/internal/view"
)

func main() {
	cfgPath := flag.String("config", "trailmap.yaml", "configuration file")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trailedit [-config file] <trail-dir>")
		os.Exit(2)
	}
	name := flag.Arg(0)

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

	db, err := store.NewFS(cfg.TrailsDir)
	if err != nil {
		log.Fatal(err)
	}
	doc, err := trail.Load(db, name)
	if err != nil {
		log.Fatal(err)
	}
	dir := cfg.TrailsDir + "/" + name
	imgs, err := assets.LoadMap(dir, doc.Trail.Map)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(doc.Trail.Name+" (editor)"),
			app.Size(unit.Dp(900), unit.Dp(700)),
		)

		editor := view.NewEditor(doc, db, imgs)
		if err := editor.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
