package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// gpxWaypoint is a <wpt> element. Tags carry no namespace so GPX 1.0, 1.1
// and un-namespaced files all match.
type gpxWaypoint struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Name *string `xml:"name"`
	Desc *string `xml:"desc"`
}

// LoadGPX reads every <wpt> element in document order. Route and track points
// are not waypoints and are ignored.
//
// The name comes from <name>, else <desc>, else field.DefaultName. A <wpt>
// with unparsable coordinates is skipped with a warning; malformed XML is an
// error.
func LoadGPX(r io.Reader, log logrus.FieldLogger) ([]field.Waypoint, error) {
	log = orDiscard(log)
	dec := xml.NewDecoder(r)

	var waypoints []field.Waypoint
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse gpx: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "wpt" {
			continue
		}
		line, _ := dec.InputPos()

		var w gpxWaypoint
		if err := dec.DecodeElement(&w, &start); err != nil {
			return nil, fmt.Errorf("parse gpx: %w", err)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(w.Lat), 64)
		if err != nil {
			skip(log, line, "wpt lat: "+err.Error())
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(w.Lon), 64)
		if err != nil {
			skip(log, line, "wpt lon: "+err.Error())
			continue
		}

		name := field.DefaultName
		switch {
		case w.Name != nil:
			name = *w.Name
		case w.Desc != nil:
			name = *w.Desc
		}

		waypoints = append(waypoints, field.Waypoint{Lat: lat, Lon: lon, Name: strings.TrimSpace(name)})
	}

	return waypoints, nil
}
