package renamer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

// DefaultRadiusMeters is the zone radius around each station center.
const DefaultRadiusMeters = 35.0

// zoneSegments controls how finely the circular zone is approximated.
const zoneSegments = 64

// StationConfig is one entry of the station table, in geographic
// coordinates (EPSG:4326).
type StationConfig struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// DefaultStations is the fixed table of measurement stations in Dortmund.
var DefaultStations = []StationConfig{
	{Name: "saarlandstr_open_space_vegetation", Longitude: 7.46981, Latitude: 51.50711},
	{Name: "landgrafenstr_vegetation", Longitude: 7.47259, Latitude: 51.50424},
	{Name: "chemnitzerstr_n_s_street", Longitude: 7.46328, Latitude: 51.50198},
	{Name: "saarlandstr_e_w_street", Longitude: 7.45984, Latitude: 51.50463},
	{Name: "eintrachtstr_open_space", Longitude: 7.46882, Latitude: 51.50054},
	{Name: "landgrafenstr_e_w_vegetation", Longitude: 7.46261, Latitude: 51.50275},
	{Name: "DOTAMW", Longitude: 7.461792881387834, Latitude: 51.50175339515813},
}

// Station is a named zone in the registry's projected CRS.
type Station struct {
	Name   string
	Center orb.Point
	Zone   orb.Polygon
}

// Registry holds the reprojected, buffered station zones and the transform
// used to bring photo positions into the same CRS.
type Registry struct {
	stations    []Station
	toProjected wgs84.Func
}

// NewRegistry builds the registry once at process start: every station
// center is transformed from EPSG:4326 to ETRS89 / UTM zone 32N
// (EPSG:25832) and buffered into a circular zone of radiusMeters.
func NewRegistry(stations []StationConfig, radiusMeters float64) (*Registry, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("station table is empty")
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("zone radius must be positive, got %v", radiusMeters)
	}

	r := &Registry{
		stations:    make([]Station, 0, len(stations)),
		toProjected: wgs84.LonLat().To(wgs84.ETRS89UTM(32)),
	}
	for _, sc := range stations {
		if sc.Name == "" {
			return nil, fmt.Errorf("station at (%v, %v) has no name", sc.Longitude, sc.Latitude)
		}
		center := r.Project(sc.Longitude, sc.Latitude)
		r.stations = append(r.stations, Station{
			Name:   sc.Name,
			Center: center,
			Zone:   circleZone(center, radiusMeters),
		})
	}
	return r, nil
}

// Stations returns the registry content in table order.
func (r *Registry) Stations() []Station {
	return r.stations
}

// Project transforms a geographic coordinate into the registry's CRS.
func (r *Registry) Project(lon, lat float64) orb.Point {
	x, y, _ := r.toProjected(lon, lat, 0)
	return orb.Point{x, y}
}

// circleZone approximates a circle around center as a closed ring.
func circleZone(center orb.Point, radius float64) orb.Polygon {
	ring := make(orb.Ring, 0, zoneSegments+1)
	for i := 0; i < zoneSegments; i++ {
		a := 2 * math.Pi * float64(i) / zoneSegments
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(a),
			center[1] + radius*math.Sin(a),
		})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// LoadStations reads a station table from a JSON file, for running against
// a different set of stations than the built-in one.
func LoadStations(path string) ([]StationConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station table: %w", err)
	}
	var stations []StationConfig
	if err := json.Unmarshal(b, &stations); err != nil {
		return nil, fmt.Errorf("parse station table %s: %w", path, err)
	}
	return stations, nil
}
