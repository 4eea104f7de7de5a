package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// LoadNMEA reads WPL (waypoint location) sentences from an NMEA 0183 log,
// such as the output of a chartplotter's waypoint transfer.
//
// Other sentence types are ignored without being parsed, so logs full of
// proprietary or unsupported sentences load quietly. WPL sentences with a bad
// checksum or unparsable fields are skipped with a warning.
func LoadNMEA(r io.Reader, log logrus.FieldLogger) ([]field.Waypoint, error) {
	log = orDiscard(log)

	var waypoints []field.Waypoint
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		raw := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(raw, "$") {
			continue
		}

		// $ttWPL: two-character talker, then the sentence type.
		tag, _, _ := strings.Cut(raw, ",")
		if !strings.HasSuffix(tag, nmea.TypeWPL) {
			log.WithFields(logrus.Fields{"line": line, "sentence": tag}).Debug("ignoring sentence")
			continue
		}

		sentence, err := nmea.Parse(raw)
		if err != nil {
			skip(log, line, err.Error())
			continue
		}

		wpl, ok := sentence.(nmea.WPL)
		if !ok {
			skip(log, line, fmt.Sprintf("unexpected sentence type %s", sentence.DataType()))
			continue
		}
		waypoints = append(waypoints, field.Waypoint{
			Lat:  wpl.Latitude,
			Lon:  wpl.Longitude,
			Name: strings.TrimSpace(wpl.Ident),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read nmea: %w", err)
	}

	return waypoints, nil
}
