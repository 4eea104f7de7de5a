package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// LoadCSV reads "lat,lon,name" records. Columns after the third are ignored.
//
// Blank and whitespace-only lines are skipped silently. Lines with fewer than three columns or
// coordinates that do not parse (a header row, for instance) are skipped with
// a warning. Numbers always use a period decimal separator.
func LoadCSV(r io.Reader, log logrus.FieldLogger) ([]field.Waypoint, error) {
	log = orDiscard(log)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var waypoints []field.Waypoint
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skip(log, perr.StartLine, perr.Err.Error())
				continue
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if blank(rec) {
			continue
		}

		if len(rec) < 3 {
			skip(log, line, "expected lat,lon,name")
			continue
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			skip(log, line, "latitude: "+err.Error())
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			skip(log, line, "longitude: "+err.Error())
			continue
		}

		waypoints = append(waypoints, field.Waypoint{
			Lat:  lat,
			Lon:  lon,
			Name: strings.TrimSpace(rec[2]),
		})
	}

	return waypoints, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
