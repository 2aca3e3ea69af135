// Package renamer renames bike photos after the measurement station whose
// zone contains the photo's GPS position, stamping the capture time in UTC.
package renamer

import (
	"fmt"

	"github.com/barasher/go-exiftool"
	"github.com/paulmach/orb"
	"k8s.io/klog/v2"
)

// Config holds configuration for a renaming run.
type Config struct {
	// OutputDir receives the renamed copies. Created on demand.
	OutputDir string
	// MapPath is where the station overview map is written.
	MapPath string
}

// Renamed records a single input file and the copy made for it.
type Renamed struct {
	From string
	To   string
}

// Summary is the outcome of a run. Points holds the projected positions of
// all matched photos, in the registry's CRS, for the overview map.
type Summary struct {
	Renamed []Renamed
	Skipped []string
	Points  []orb.Point
}

// Run processes files in order: extract geotags, match against the station
// registry, copy matched photos under their new name and finally (re)write
// the overview map. Photos without a matching station are skipped with a
// notice; a missing required EXIF tag or an unreadable file aborts the run.
func Run(c *Config, reg *Registry, files []string) (*Summary, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool failed: %w", err)
	}
	defer et.Close()

	sum := &Summary{}
	for idx, fname := range files {
		fmt.Printf("%d/%d - %s\n", idx+1, len(files), fname)

		p, err := read(fname, et)
		if err != nil {
			return nil, err
		}

		s, ok := reg.Match(p)
		if !ok {
			fmt.Printf("No station found for image: %s, skipping!\n", fname)
			sum.Skipped = append(sum.Skipped, fname)
			continue
		}

		dst, err := renameInto(c.OutputDir, s, p)
		if err != nil {
			return nil, err
		}
		klog.V(1).Infof("renamed %s -> %s", fname, dst)

		sum.Renamed = append(sum.Renamed, Renamed{From: fname, To: dst})
		sum.Points = append(sum.Points, reg.Project(p.Longitude, p.Latitude))
	}

	if err := writeMap(c.MapPath, reg, sum.Points); err != nil {
		return nil, fmt.Errorf("write map: %w", err)
	}

	return sum, nil
}
