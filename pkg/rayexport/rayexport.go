package rayexport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beetlebugorg/rayexport/internal/emitter"
	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/beetlebugorg/rayexport/internal/loader"
	"github.com/sirupsen/logrus"
)

// Waypoint is a named geographic point in decimal degrees (WGS-84).
//
// Names may be any length and contain any characters; they are sanitized
// when exported, never when loaded.
type Waypoint struct {
	Lat  float64
	Lon  float64
	Name string
}

// Document is a decoded export file.
type Document = emitter.Document

// Record is one waypoint as stored in an export file.
type Record = emitter.Record

// Route is the route carried by an export file.
type Route = emitter.Route

// DirEntry is one object in a flash-file directory.
type DirEntry = emitter.DirEntry

// ErrNoWaypoints is returned by Convert when the input holds no waypoints
// (after any bounds filter), so there is nothing worth writing.
var ErrNoWaypoints = errors.New("no waypoints found in input")

// Encode returns the complete export file content for waypoints.
func Encode(waypoints []Waypoint, opts ExportOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	return emitter.Encode(format, toField(waypoints), opts.toInternal(time.Now()))
}

// Export encodes waypoints and writes the result to w in a single write.
func Export(w io.Writer, waypoints []Waypoint, opts ExportOptions) error {
	data, err := Encode(waypoints, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ExportFile encodes waypoints into path, replacing any existing file.
//
// The format comes from opts.Format, or from the extension of path when that
// is empty (.rwf, .fsh, anything else is text). The file is written to a
// temporary sibling and renamed into place, so on failure the previous
// content, if any, is left untouched.
func ExportFile(path string, waypoints []Waypoint, opts ExportOptions) error {
	if opts.Format == "" {
		opts.Format = emitter.FormatForPath(path)
	}

	data, err := Encode(waypoints, opts)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return err
	}

	logger(opts.Logger).WithFields(logrus.Fields{
		"path":      path,
		"format":    opts.Format,
		"waypoints": len(waypoints),
		"bytes":     len(data),
	}).Info("export written")
	return nil
}

// Load reads waypoints from a .csv, .gpx or .nmea file.
//
// Records that cannot be read are skipped and reported to log as warnings.
func Load(path string, log logrus.FieldLogger) ([]Waypoint, error) {
	wps, err := loader.LoadFile(path, log)
	if err != nil {
		return nil, err
	}
	return fromField(wps), nil
}

// Decode parses export file content written in format.
func Decode(format Format, data []byte) (*Document, error) {
	return emitter.Decode(format, data)
}

// DecodeFile reads and parses an export file, choosing the format from its
// extension.
func DecodeFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	doc, err := emitter.Decode(emitter.FormatForPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// FormatForPath returns the export format implied by a file extension.
func FormatForPath(path string) Format {
	return emitter.FormatForPath(path)
}

// ParseFormat converts a format name such as "fsh" or ".rwf".
func ParseFormat(name string) (Format, error) {
	return emitter.ParseFormat(name)
}

// ParseSchema converts a schema name such as "v1" or "v2".
func ParseSchema(name string) (Schema, error) {
	return emitter.ParseSchema(name)
}

// ConvertOptions configures Convert.
type ConvertOptions struct {
	ExportOptions

	// Bounds, when set, keeps only waypoints inside it.
	Bounds *Bounds
}

// Convert loads input, optionally filters it, and exports it to output.
// It returns the number of waypoints written.
func Convert(input, output string, opts ConvertOptions) (int, error) {
	waypoints, err := Load(input, opts.Logger)
	if err != nil {
		return 0, err
	}

	if opts.Bounds != nil {
		before := len(waypoints)
		waypoints = NewIndex(waypoints).Within(*opts.Bounds)
		logger(opts.Logger).WithFields(logrus.Fields{
			"kept":    len(waypoints),
			"dropped": before - len(waypoints),
		}).Debug("bounds filter applied")
	}

	if len(waypoints) == 0 {
		return 0, fmt.Errorf("%s: %w", input, ErrNoWaypoints)
	}

	if err := ExportFile(output, waypoints, opts.ExportOptions); err != nil {
		return 0, err
	}
	return len(waypoints), nil
}

func toField(wps []Waypoint) []field.Waypoint {
	out := make([]field.Waypoint, len(wps))
	for i, w := range wps {
		out[i] = field.Waypoint{Lat: w.Lat, Lon: w.Lon, Name: w.Name}
	}
	return out
}

func fromField(wps []field.Waypoint) []Waypoint {
	out := make([]Waypoint, len(wps))
	for i, w := range wps {
		out[i] = Waypoint{Lat: w.Lat, Lon: w.Lon, Name: w.Name}
	}
	return out
}

func logger(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
