package rayexport

import (
	"time"

	"github.com/beetlebugorg/rayexport/internal/emitter"
	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// Format identifies an export file format.
type Format = emitter.Format

// Export formats.
const (
	FormatText = emitter.FormatText
	FormatRWF  = emitter.FormatRWF
	FormatFSH  = emitter.FormatFSH
)

// Schema selects the RL90 flash-file object-type codes.
type Schema = emitter.SchemaVersion

// Flash-file schemas.
const (
	SchemaV1 = emitter.SchemaV1
	SchemaV2 = emitter.SchemaV2
)

// Line endings for the text formats.
const (
	CRLF = emitter.CRLF
	LF   = emitter.LF
)

// ExportOptions configures one export.
type ExportOptions struct {
	// Format selects the output format. When empty, ExportFile derives it
	// from the output extension and Encode uses FormatText.
	Format Format

	// Group names the waypoint collection and the derived route.
	Group string

	// IncludeRoute appends a route through every waypoint in input order.
	// Only the RWF and flash-file formats carry routes.
	IncludeRoute bool

	// Time is the export timestamp written to every record.
	// Zero means the current time.
	Time time.Time

	// Schema selects flash-file type codes. Zero means SchemaV1.
	Schema Schema

	// LineEnding terminates text lines. Empty means CRLF, which is what
	// RayTech itself writes.
	LineEnding string

	// StrictText fails the export when a name cannot be stored as single
	// bytes, instead of substituting '?'.
	StrictText bool

	// Logger receives diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// DefaultExportOptions returns options for a flash-file export without a route.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:     FormatFSH,
		Group:      "WAYPOINTS",
		Schema:     SchemaV1,
		LineEnding: CRLF,
	}
}

// toInternal resolves defaults that depend on the moment of the call.
func (o ExportOptions) toInternal(now time.Time) emitter.Options {
	t := o.Time
	if t.IsZero() {
		t = now
	}
	return emitter.Options{
		Group:        o.Group,
		IncludeRoute: o.IncludeRoute,
		Time:         field.OADate(t),
		Schema:       o.Schema,
		LineEnding:   o.LineEnding,
		StrictText:   o.StrictText,
		Logger:       o.Logger,
	}
}
