// Package loader reads waypoint lists from CSV, GPX and NMEA 0183 files.
//
// Loaders are lenient about individual records: a record that cannot be read
// is reported to the logger as a warning and skipped, and loading continues.
// Only failures that affect the whole input (an unreadable file, broken XML)
// are returned as errors.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// Kind identifies an input format.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindGPX  Kind = "gpx"
	KindNMEA Kind = "nmea"
)

// ErrUnsupportedFormat indicates an input extension with no loader
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported input type %q (use .csv, .gpx, .nmea or .log)", e.Ext)
}

// ErrMalformedRecord describes one skipped input record
type ErrMalformedRecord struct {
	Line   int
	Reason string
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// KindForPath picks the loader from a file extension.
func KindForPath(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return KindCSV, nil
	case ".gpx":
		return KindGPX, nil
	case ".nmea", ".nmea0183", ".nme", ".log":
		return KindNMEA, nil
	default:
		return "", &ErrUnsupportedFormat{Ext: ext}
	}
}

// LoadFile reads waypoints from path using the loader for its extension.
func LoadFile(path string, log logrus.FieldLogger) ([]field.Waypoint, error) {
	kind, err := KindForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	log = orDiscard(log).WithFields(logrus.Fields{"path": path, "input": kind})
	log.Info("reading waypoints")

	waypoints, err := Load(kind, f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithField("waypoints", len(waypoints)).Info("waypoints loaded")
	return waypoints, nil
}

// Load reads waypoints of the given kind from r.
func Load(kind Kind, r io.Reader, log logrus.FieldLogger) ([]field.Waypoint, error) {
	log = orDiscard(log)
	switch kind {
	case KindCSV:
		return LoadCSV(r, log)
	case KindGPX:
		return LoadGPX(r, log)
	case KindNMEA:
		return LoadNMEA(r, log)
	default:
		return nil, &ErrUnsupportedFormat{Ext: string(kind)}
	}
}

func skip(log logrus.FieldLogger, line int, reason string) {
	err := &ErrMalformedRecord{Line: line, Reason: reason}
	log.WithField("line", line).WithError(err).Warn("skipping invalid record")
}

func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
