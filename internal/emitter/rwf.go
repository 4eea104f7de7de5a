package emitter

import (
	"strconv"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
)

const zero15 = "0.000000000000000"

// rwfWaypointConstants follow Long in every [Wp<i>] section, in file order.
// SeaTemp and Depth are the "not measured" sentinels.
var rwfWaypointConstants = [][2]string{
	{"Rng", zero15},
	{"Bear", zero15},
	{"Bmp", "3"},
	{"Fixed", "1"},
	{"Locked", "0"},
	{"Notes", ""},
	{"Rel", ""},
	{"RelSet", "1"},
	{"RcCount", "1"},
	{"RcRadius", zero15},
	{"Show", "1"},
	{"RcShow", "0"},
	{"SeaTemp", "-32678.000000000000000"},
	{"Depth", "65535.000000000000000"},
}

// rwfLegKeys are written after each Mk<i> key of the route section. The values
// are derived navigation data that is never computed here, so always zero.
var rwfLegKeys = []string{
	"Cog", "Eta", "Length",
	"PredictedDrift", "PredictedSet", "PredictedSog", "PredictedTime",
	"PredictedTwa", "PredictedTwd", "PredictedTws",
}

// rwfEmitter writes the key/value format: one [Wp<i>] section per waypoint and
// an optional [Rt0] route section.
type rwfEmitter struct{}

func (rwfEmitter) Format() Format { return FormatRWF }

func (rwfEmitter) Encode(waypoints []field.Waypoint, opts Options) ([]byte, error) {
	w := kvWriter{eol: opts.lineEnding()}

	records := prepare(waypoints, opts)
	for i, r := range records {
		w.section("Wp" + strconv.Itoa(i))
		w.key("Loc", r.Group)
		w.key("Name", r.Name)
		w.key("Lat", field.FormatFloat15(r.Lat))
		w.key("Long", field.FormatFloat15(r.Lon))
		for _, kv := range rwfWaypointConstants {
			w.key(kv[0], kv[1])
		}
		w.key("Time", field.FormatFloat15(r.Time))
		w.key("GUID", r.ID)
		w.blank()
	}

	if rt := deriveRoute(records, opts); rt != nil {
		w.section("Rt0")
		w.key("Name", rt.Name)
		w.key("Visible", "1")
		w.key("Guid", rt.ID)
		for i, mark := range rt.Marks {
			n := strconv.Itoa(i)
			w.key("Mk"+n, mark)
			for _, k := range rwfLegKeys {
				w.key(k+n, zero15)
			}
		}
	}

	return []byte(w.sb.String()), nil
}

type kvWriter struct {
	sb  strings.Builder
	eol string
}

func (w *kvWriter) section(name string) {
	w.sb.WriteString("[" + name + "]" + w.eol)
}

func (w *kvWriter) key(k, v string) {
	w.sb.WriteString(k + "=" + v + w.eol)
}

func (w *kvWriter) blank() {
	w.sb.WriteString(w.eol)
}
