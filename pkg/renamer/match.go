package renamer

import (
	"github.com/paulmach/orb/planar"
)

// Match finds the station whose zone contains the photo's position.
// Position-less photos never match. Zones are assumed non-overlapping, so
// the first hit wins; boundary behavior is whatever orb's containment test
// defines.
func (r *Registry) Match(p Photo) (*Station, bool) {
	if !p.HasPosition() {
		return nil, false
	}

	pt := r.Project(p.Longitude, p.Latitude)
	for i := range r.stations {
		if planar.PolygonContains(r.stations[i].Zone, pt) {
			return &r.stations[i], true
		}
	}
	return nil, false
}
