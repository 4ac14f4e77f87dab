// Command trailtool is the maintenance CLI for trail folders:
// thumbnail generation, launcher icons, document validation and the
// live-reload preview server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cedarcreek/trailmap/internal/config"
	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/serve"
	"github.com/cedarcreek/trailmap/internal/store"
	"github.com/cedarcreek/trailmap/internal/thumbs"
	"github.com/cedarcreek/trailmap/internal/trail"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "trailtool",
		Short:         "Maintenance tools for trail folders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				debug.SetOutput(os.Stderr)
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "trailmap.yaml", "configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(thumbsCmd())
	root.AddCommand(iconsCmd())
	root.AddCommand(validateCmd(&cfgPath))
	root.AddCommand(serveCmd(&cfgPath))
	return root
}

func thumbsCmd() *cobra.Command {
	var size, workers int

	cmd := &cobra.Command{
		Use:   "thumbs <photos-dir>",
		Short: "Generate WebP thumbnails for every waypoint photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := thumbs.Collect(args[0])
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("no photos found")
				return nil
			}
			results := thumbs.Run(thumbs.Config{
				Size:    size,
				Workers: workers,
				Progress: func(done, total int) {
					debug.Log("thumbs %d/%d", done, total)
				},
			}, jobs)

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
					fmt.Fprintf(os.Stderr, "%s: %s\n", r.Src, r.Error)
				}
			}
			fmt.Printf("%d thumbnails written, %d failed\n", len(results)-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d photos failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", thumbs.ThumbnailSize, "thumbnail edge length in pixels")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel encoders")
	return cmd
}

func iconsCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "icons <logo.png>",
		Short: "Generate launcher and favicon images from a logo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = filepath.Dir(args[0])
			}
			return thumbs.GenerateIcons(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: next to the logo)")
	return cmd
}

func validateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [trail-dir]",
		Short: "Check trail documents for structural problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			db, err := store.NewFS(cfg.TrailsDir)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				doc, err := trail.Load(db, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s: ok (%d waypoints, rev %s)\n", doc.Trail.Name, len(doc.Trail.Waypoints), doc.Rev)
				return nil
			}

			docs, err := trail.List(db, "")
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return fmt.Errorf("no trails under %s", cfg.TrailsDir)
			}
			for _, doc := range docs {
				fmt.Printf("%s: ok (%d waypoints)\n", doc.Trail.Name, len(doc.Trail.Waypoints))
			}
			return nil
		},
	}
}

func serveCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trails directory with live reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ServeAddr
			}
			fmt.Printf("serving %s on %s\n", cfg.TrailsDir, addr)
			return serve.New(cfg.TrailsDir).ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
