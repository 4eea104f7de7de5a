package rayexport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	exportTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	trip       = []Waypoint{
		{Lat: 40.7, Lon: -74.0, Name: "NYC"},
		{Lat: 34.0, Lon: -118.2, Name: "LA"},
	}
)

func TestDefaultExportOptions(t *testing.T) {
	opts := DefaultExportOptions()
	assert.Equal(t, FormatFSH, opts.Format)
	assert.Equal(t, SchemaV1, opts.Schema)
	assert.False(t, opts.IncludeRoute)
}

// TestTextScenario exports two waypoints as RayTech text and reads the fields back
func TestTextScenario(t *testing.T) {
	data, err := Encode(trip, ExportOptions{Format: FormatText, Group: "TRIP", Time: exportTime})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), CRLF), CRLF)
	require.Len(t, lines, 10+2)

	coords := [][2]string{
		{"40.700000000000000", "-74.000000000000000"},
		{"34.000000000000000", "-118.200000000000000"},
	}
	for i, want := range trip {
		fields := strings.Split(lines[10+i], ",")
		require.Len(t, fields, 21)
		assert.Equal(t, want.Name, fields[1])
		assert.Equal(t, coords[i][0], fields[2])
		assert.Equal(t, coords[i][1], fields[3])
		assert.Equal(t, "45292.500000000000000", fields[18])
	}
}

// TestFlashFileScenario exports two waypoints without a route as an RL90 flash file
func TestFlashFileScenario(t *testing.T) {
	data, err := Encode(trip, ExportOptions{Format: FormatFSH, Group: "TRIP", Time: exportTime})
	require.NoError(t, err)
	require.Zero(t, len(data)%512)

	doc, err := Decode(FormatFSH, data)
	require.NoError(t, err)
	require.Len(t, doc.Directory, 1)
	assert.Equal(t, uint32(512), doc.Directory[0].Offset)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "NYC", doc.Records[0].Name)
	assert.Equal(t, "LA", doc.Records[1].Name)
	assert.Nil(t, doc.Route)
}

// TestRWFScenario exports two waypoints with a route as RWF
func TestRWFScenario(t *testing.T) {
	data, err := Encode(trip, ExportOptions{Format: FormatRWF, Group: "TRIP", IncludeRoute: true, Time: exportTime})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "[Wp0]")
	assert.Contains(t, text, "[Wp1]")
	assert.Equal(t, 1, strings.Count(text, "[Rt0]"))
	assert.Contains(t, text, "Mk0=NYC")
	assert.Contains(t, text, "Mk1=LA")
}

func TestEncodeDefaultsToText(t *testing.T) {
	data, err := Encode(trip, ExportOptions{Group: "TRIP", Time: exportTime})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "*********** RAYTECH"))
}

func TestEncodeUsesCurrentTime(t *testing.T) {
	before := time.Now().UTC()
	data, err := Encode(trip, ExportOptions{Format: FormatFSH})
	require.NoError(t, err)
	after := time.Now().UTC()

	doc, err := Decode(FormatFSH, data)
	require.NoError(t, err)
	got := doc.Records[0].Time
	assert.Equal(t, got, doc.Records[1].Time, "one timestamp per export")

	lo := before.Add(-time.Second)
	hi := after.Add(time.Second)
	stamp := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).Add(time.Duration(got * 24 * float64(time.Hour)))
	assert.True(t, stamp.After(lo) && stamp.Before(hi), "timestamp %v outside [%v, %v]", stamp, lo, hi)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	opts := ExportOptions{Format: FormatRWF, Group: "TRIP", Time: exportTime}
	require.NoError(t, Export(&buf, trip, opts))

	want, err := Encode(trip, opts)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	err = Export(failingWriter{}, trip, opts)
	assert.ErrorIs(t, err, errDiskFull)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestExportFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.txt", "out.rwf", "out.fsh"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, ExportFile(path, trip, ExportOptions{Group: "TRIP", IncludeRoute: true, Time: exportTime}))

			doc, err := DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, FormatForPath(path), doc.Format)
			assert.Len(t, doc.Records, 2)
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files left behind")
}

func TestExportFileFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marks.fsh")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	err := ExportFile(path, []Waypoint{{Name: "Øresund"}}, ExportOptions{StrictText: true})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportFileMissingDirectory(t *testing.T) {
	err := ExportFile(filepath.Join(t.TempDir(), "nope", "marks.fsh"), trip, ExportOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "marks.csv")
	csv := "40.7,-74.0,NYC\n34.0,-118.2,LA\n41.17,-71.58,Block Island\n"
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o644))

	out := filepath.Join(dir, "marks.fsh")
	n, err := Convert(input, out, ConvertOptions{ExportOptions: ExportOptions{Group: "TRIP", IncludeRoute: true}})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// East coast only: LA is dropped, numbering restarts over what is kept.
	east := Bounds{MinLon: -80, MaxLon: -65, MinLat: 35, MaxLat: 45}
	n, err = Convert(input, out, ConvertOptions{ExportOptions: ExportOptions{Group: "TRIP", IncludeRoute: true}, Bounds: &east})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := DecodeFile(out)
	require.NoError(t, err)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "NYC", doc.Records[0].Name)
	assert.Equal(t, "Block Island", doc.Records[1].Name)
	assert.Equal(t, "GUID-0002", doc.Records[1].ID)
	assert.Equal(t, []string{"NYC", "Block Island"}, doc.Route.Marks)
}

func TestConvertNoWaypoints(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(input, []byte("lat,lon,name\n"), 0o644))

	out := filepath.Join(dir, "empty.fsh")
	_, err := Convert(input, out, ConvertOptions{})
	assert.ErrorIs(t, err, ErrNoWaypoints)
	assert.NoFileExists(t, out)
}

func TestParseHelpers(t *testing.T) {
	f, err := ParseFormat("rwf")
	require.NoError(t, err)
	assert.Equal(t, FormatRWF, f)

	s, err := ParseSchema("v2")
	require.NoError(t, err)
	assert.Equal(t, SchemaV2, s)
}
