// bike-pic-renamer renames bike pictures based on the station whose zone
// contains the picture's GPS position, and the capture timestamp.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/RUBclim/bike-pic-renamer/pkg/renamer"
)

var (
	outputDir    = flag.String("output-dir", "images-renamed", "directory to save the renamed images to")
	mapFile      = flag.String("map", "stations.png", "path of the station overview map")
	radius       = flag.Float64("radius", renamer.DefaultRadiusMeters, "station zone radius in meters")
	stationsFile = flag.String("stations", "", "JSON station table to use instead of the built-in one")
	watchFlag    = flag.Bool("watch", false, "watch a directory and rename photos as they appear")
)

func main() {
	klog.InitFlags(nil)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] files...\n\nThe input images, any number can be specified. Arguments may be paths,\nglob patterns or directories.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	stations := renamer.DefaultStations
	if *stationsFile != "" {
		var err error
		stations, err = renamer.LoadStations(*stationsFile)
		if err != nil {
			klog.Exitf("load stations: %v", err)
		}
	}

	reg, err := renamer.NewRegistry(stations, *radius)
	if err != nil {
		klog.Exitf("build registry: %v", err)
	}

	c := &renamer.Config{
		OutputDir: *outputDir,
		MapPath:   *mapFile,
	}

	files, err := renamer.Expand(flag.Args())
	if err != nil {
		klog.Exitf("expand inputs: %v", err)
	}

	sum, err := renamer.Run(c, reg, files)
	if err != nil {
		klog.Exitf("run failed: %v", err)
	}
	klog.Infof("renamed %d image(s), skipped %d", len(sum.Renamed), len(sum.Skipped))

	if *watchFlag {
		if flag.NArg() != 1 {
			klog.Exitf("--watch takes exactly one directory argument")
		}
		if fi, err := os.Stat(flag.Arg(0)); err != nil || !fi.IsDir() {
			klog.Exitf("--watch argument %q is not a directory", flag.Arg(0))
		}
		if err := watch(c, reg, flag.Arg(0)); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

// watch processes every JPEG that appears in dir, until interrupted.
func watch(c *renamer.Config, reg *renamer.Registry, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	klog.Infof("watching %s ...", dir)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if ext != ".jpg" && ext != ".jpeg" {
				continue
			}
			if _, err := renamer.Run(c, reg, []string{event.Name}); err != nil {
				klog.Exitf("run failed: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
