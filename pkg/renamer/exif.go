package renamer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// exiftool reports EXIF DateTime (0x0132) as ModifyDate.
var exifDate = "2006:01:02 15:04:05Z07:00"

// Photo is the geotag record extracted from one image file.
type Photo struct {
	InPath string

	Taken       time.Time
	Width       int64
	Height      int64
	Orientation int

	// NaN when the corresponding GPS tag is absent or malformed.
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// HasPosition reports whether both latitude and longitude are known.
// Altitude may be unknown independently.
func (p Photo) HasPosition() bool {
	return !math.IsNaN(p.Latitude) && !math.IsNaN(p.Longitude)
}

// MissingTagError marks a required EXIF tag that is absent or unreadable.
// It is fatal for the run: without it no meaningful rename can happen.
type MissingTagError struct {
	Path string
	Tag  string
	Err  error
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("%s: required tag %s: %v", e.Path, e.Tag, e.Err)
}

func (e *MissingTagError) Unwrap() error { return e.Err }

// ToDecimalDegrees converts a degrees/minutes/seconds coordinate to signed
// decimal degrees. Southern and western hemispheres are negative. Inputs are
// trusted: out-of-range values yield out-of-range output, not an error.
func ToDecimalDegrees(degrees, minutes, seconds float64, reference string) float64 {
	dd := degrees + minutes/60 + seconds/3600
	if reference == "S" || reference == "W" {
		return -dd
	}
	return dd
}

func read(path string, et *exiftool.Exiftool) (Photo, error) {
	fis := et.ExtractMetadata(path)
	fi := fis[0]

	if fi.Err != nil {
		return Photo{}, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
	}

	for k, v := range fi.Fields {
		klog.V(2).Infof("%q=%v", k, v)
	}

	return photoFromMeta(fi)
}

// photoFromMeta decodes one exiftool record. Width, height, orientation and
// the three timestamp tags are required; GPS sub-fields degrade to NaN with
// a warning.
func photoFromMeta(fi exiftool.FileMetadata) (Photo, error) {
	p := Photo{
		InPath:    fi.File,
		Latitude:  math.NaN(),
		Longitude: math.NaN(),
		Altitude:  math.NaN(),
	}
	var err error

	p.Width, err = fi.GetInt("ImageWidth")
	if err != nil {
		return p, &MissingTagError{Path: fi.File, Tag: "ImageWidth", Err: err}
	}

	p.Height, err = fi.GetInt("ImageHeight")
	if err != nil {
		return p, &MissingTagError{Path: fi.File, Tag: "ImageHeight", Err: err}
	}

	p.Orientation, err = orientation(fi)
	if err != nil {
		return p, &MissingTagError{Path: fi.File, Tag: "Orientation", Err: err}
	}

	p.Taken, err = captureTime(fi)
	if err != nil {
		return p, err
	}

	p.Latitude, err = gpsCoordinate(fi, "GPSLatitude", "GPSLatitudeRef")
	if err != nil {
		klog.Warningf("image %s has no valid latitude: %v", fi.File, err)
		p.Latitude = math.NaN()
	}

	p.Longitude, err = gpsCoordinate(fi, "GPSLongitude", "GPSLongitudeRef")
	if err != nil {
		klog.Warningf("image %s has no valid longitude: %v", fi.File, err)
		p.Longitude = math.NaN()
	}

	p.Altitude, err = gpsAltitude(fi)
	if err != nil {
		klog.Warningf("image %s has no valid altitude: %v", fi.File, err)
		p.Altitude = math.NaN()
	}

	return p, nil
}

// captureTime composes DateTime + SubSecTime + OffsetTime into a single
// timestamp. SubSecTime defaults to 0; the other two are required.
func captureTime(fi exiftool.FileMetadata) (time.Time, error) {
	ds, err := fi.GetString("ModifyDate")
	if err != nil {
		return time.Time{}, &MissingTagError{Path: fi.File, Tag: "ModifyDate", Err: err}
	}

	sub, err := fi.GetString("SubSecTime")
	if err != nil {
		sub = "0"
	}

	off, err := fi.GetString("OffsetTime")
	if err != nil {
		return time.Time{}, &MissingTagError{Path: fi.File, Tag: "OffsetTime", Err: err}
	}

	t, err := time.Parse(exifDate, fmt.Sprintf("%s.%s%s", ds, sub, off))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: parse capture time: %w", fi.File, err)
	}
	return t, nil
}

var orientationNames = map[string]int{
	"Horizontal (normal)": 1,
	"Rotate 180":          3,
	"Rotate 90 CW":        6,
	"Rotate 270 CW":       8,
}

func orientation(fi exiftool.FileMetadata) (int, error) {
	s, err := fi.GetString("Orientation")
	if err != nil {
		return 0, err
	}
	if o, ok := orientationNames[s]; ok {
		return o, nil
	}
	o, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
	return o, nil
}

// exiftool prints GPS coordinates as e.g. `51 deg 30' 25.61" N`; the
// hemisphere letter is only present on the composite tag.
var dmsRe = regexp.MustCompile(`^(\d+(?:\.\d+)?) deg (\d+(?:\.\d+)?)' (\d+(?:\.\d+)?)"(?: ([NSEW]))?$`)

func gpsCoordinate(fi exiftool.FileMetadata, tag, refTag string) (float64, error) {
	s, err := fi.GetString(tag)
	if err != nil {
		return 0, err
	}
	ref, _ := fi.GetString(refTag)
	return parseDMS(s, ref)
}

// parseDMS decodes an exiftool DMS string into decimal degrees. The
// hemisphere comes from the trailing letter when present, otherwise from
// the Ref tag value ("N" or spelled out, "North").
func parseDMS(s, ref string) (float64, error) {
	m := dmsRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("unparseable coordinate %q", s)
	}

	deg, _ := strconv.ParseFloat(m[1], 64)
	min, _ := strconv.ParseFloat(m[2], 64)
	sec, _ := strconv.ParseFloat(m[3], 64)

	hemi := m[4]
	if hemi == "" {
		hemi = refLetter(ref)
	}
	if hemi == "" {
		return 0, fmt.Errorf("coordinate %q has no hemisphere reference", s)
	}

	return ToDecimalDegrees(deg, min, sec, hemi), nil
}

func refLetter(ref string) string {
	if ref == "" {
		return ""
	}
	l := strings.ToUpper(ref[:1])
	if strings.ContainsAny(l, "NSEW") {
		return l
	}
	return ""
}

// gpsAltitude reads GPSAltitude ("60.2 m Above Sea Level") and signs it by
// the altitude reference.
func gpsAltitude(fi exiftool.FileMetadata) (float64, error) {
	s, err := fi.GetString("GPSAltitude")
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("unparseable altitude %q", s)
	}
	alt, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable altitude %q: %w", s, err)
	}

	ref, _ := fi.GetString("GPSAltitudeRef")
	if strings.Contains(s, "Below") || strings.Contains(ref, "Below") {
		alt = -alt
	}
	return alt, nil
}
