// Package emitter turns a waypoint sequence into the byte-exact content of a
// Raymarine export file.
//
// Three formats are supported, each behind the Emitter interface:
//
//   - FormatText: the RayTech delimited text file (.txt)
//   - FormatRWF: the key/value waypoint file (.rwf)
//   - FormatFSH: the RL90 flash-file binary container (.fsh)
//
// Emitters hold no state. Every call builds its output fully in memory from
// the waypoints and Options it is given, so concurrent calls are safe.
package emitter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// Format identifies an export file format.
type Format string

const (
	// FormatText is the RayTech comma-delimited text format.
	FormatText Format = "txt"
	// FormatRWF is the INI-style waypoint/route format.
	FormatRWF Format = "rwf"
	// FormatFSH is the RL90 flash-file container.
	FormatFSH Format = "fsh"
)

// Line endings for the text formats.
const (
	CRLF = "\r\n"
	LF   = "\n"
)

// Options configures one export call.
type Options struct {
	// Group is the waypoint group (collection) name. It is sanitized like a
	// waypoint name before use and also names the derived route.
	Group string

	// IncludeRoute appends a route visiting every waypoint in input order.
	// Ignored by FormatText and when there are no waypoints.
	IncludeRoute bool

	// Time is the export moment as an OLE automation date (see field.OADate).
	// Every record written by the call carries this same value.
	Time float64

	// Schema selects the flash-file object-type codes. Zero means SchemaV1.
	Schema SchemaVersion

	// LineEnding terminates every text line. Empty means CRLF.
	LineEnding string

	// StrictText rejects names that cannot be written as single bytes in
	// fixed-width fields instead of substituting field.Placeholder.
	StrictText bool

	// Logger receives diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

func (o Options) lineEnding() string {
	if o.LineEnding == "" {
		return CRLF
	}
	return o.LineEnding
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return o.Logger
}

// Emitter encodes waypoints into one export format.
type Emitter interface {
	// Encode returns the complete file content.
	Encode(waypoints []field.Waypoint, opts Options) ([]byte, error)

	// Format reports which format this emitter produces.
	Format() Format
}

// New returns the emitter for format.
func New(format Format) (Emitter, error) {
	switch format {
	case FormatText:
		return textEmitter{}, nil
	case FormatRWF:
		return rwfEmitter{}, nil
	case FormatFSH:
		return fshEmitter{}, nil
	default:
		return nil, &ErrUnsupportedFormat{Format: string(format)}
	}
}

// Encode is a shorthand for New(format) followed by Encode.
func Encode(format Format, waypoints []field.Waypoint, opts Options) ([]byte, error) {
	e, err := New(format)
	if err != nil {
		return nil, err
	}

	data, err := e.Encode(waypoints, opts)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	opts.logger().WithFields(logrus.Fields{
		"format":    format,
		"waypoints": len(waypoints),
		"route":     opts.IncludeRoute && len(waypoints) > 0 && format != FormatText,
		"bytes":     len(data),
	}).Debug("encoded export")

	return data, nil
}

// FormatForPath picks the output format from a file extension:
// .rwf and .fsh select their formats, anything else is RayTech text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rwf":
		return FormatRWF
	case ".fsh":
		return FormatFSH
	default:
		return FormatText
	}
}

// ParseFormat converts a format name ("txt", ".fsh", "RWF") to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(name, ".")))
	switch f {
	case FormatText, FormatRWF, FormatFSH:
		return f, nil
	default:
		return "", &ErrUnsupportedFormat{Format: name}
	}
}

// Extension returns the conventional file extension, with the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}
