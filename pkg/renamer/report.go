package renamer

import (
	"fmt"
	"image/color"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// writeMap renders the station zones and all matched photo positions into a
// single overview image. It is written at the end of every run, also when
// nothing matched.
func writeMap(path string, reg *Registry, points []orb.Point) error {
	p := plot.New()
	p.Title.Text = "Stations"
	p.X.Label.Text = "Easting (m)"
	p.Y.Label.Text = "Northing (m)"
	p.Add(plotter.NewGrid())

	for _, s := range reg.Stations() {
		ring := s.Zone[0]
		xys := make(plotter.XYs, len(ring))
		for i, pt := range ring {
			xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
		}

		zone, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("zone polygon for %s: %w", s.Name, err)
		}
		zone.Color = color.NRGBA{B: 255, A: 26}
		zone.LineStyle.Color = color.NRGBA{B: 255, A: 255}
		zone.LineStyle.Width = vg.Points(2)
		p.Add(zone)
	}

	if len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
		}

		photos, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("photo scatter: %w", err)
		}
		photos.GlyphStyle.Shape = draw.CircleGlyph{}
		photos.GlyphStyle.Color = color.NRGBA{R: 255, A: 178}
		photos.GlyphStyle.Radius = vg.Points(3)
		p.Add(photos)
		p.Legend.Add("Photo", photos)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
