package emitter

import (
	"encoding/binary"
	"testing"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }
func u32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

func TestFSHWaypointsOnly(t *testing.T) {
	data, err := Encode(FormatFSH, trip, tripOptions(false))
	require.NoError(t, err)

	// Directory block plus one padded waypoint block.
	require.Len(t, data, 1024)
	assert.Equal(t, []byte("RL90 FLASH FILE\x00"), data[:16])
	assert.Equal(t, uint16(1), u16(data, 16), "object count")
	assert.Equal(t, uint16(0), u16(data, 18), "reserved")

	assert.Equal(t, uint16(ObjectWaypointsV1), u16(data, 20))
	assert.Equal(t, uint32(512), u32(data, 22), "waypoint offset")
	assert.Equal(t, uint32(2*WaypointRecordSize), u32(data, 26), "unpadded length")
	for _, c := range data[30:512] {
		require.Zero(t, c, "directory padding")
	}

	rec := data[512:]
	assert.Equal(t, 40.7, field.Float64At(rec, 0))
	assert.Equal(t, -74.0, field.Float64At(rec, 8))
	assert.Equal(t, testTime, field.Float64At(rec, 16))
	for off := 24; off < 72; off += 8 {
		assert.Zero(t, field.Float64At(rec, off))
	}
	assert.Equal(t, byte(1), rec[72], "visible")
	assert.Equal(t, byte(0), rec[73], "locked")
	assert.Equal(t, "NYC", field.TrimFixed(rec[74:90]))
	assert.Equal(t, "TRIP", field.TrimFixed(rec[90:106]))
	assert.Equal(t, "GUID-0001", field.TrimFixed(rec[106:142]))

	la := rec[WaypointRecordSize:]
	assert.Equal(t, "LA", field.TrimFixed(la[74:90]))
	assert.Equal(t, "GUID-0002", field.TrimFixed(la[106:142]))
}

func TestFSHSchemaV2WithRoute(t *testing.T) {
	opts := tripOptions(true)
	opts.Schema = SchemaV2
	data, err := Encode(FormatFSH, trip, opts)
	require.NoError(t, err)

	require.Len(t, data, 1536)
	assert.Equal(t, uint16(2), u16(data, 16))

	assert.Equal(t, uint16(ObjectWaypointsV2), u16(data, 20))
	assert.Equal(t, uint32(512), u32(data, 22))
	assert.Equal(t, uint32(4+2*WaypointRecordSize), u32(data, 26))

	assert.Equal(t, uint16(ObjectRouteV2), u16(data, 30))
	assert.Equal(t, uint32(1024), u32(data, 32))
	assert.Equal(t, uint32(4+routeHeaderSize+2*16), u32(data, 36))

	// Waypoint block header, then the first record.
	assert.Equal(t, uint16(2), u16(data, 512))
	assert.Equal(t, uint16(0), u16(data, 514))
	assert.Equal(t, "NYC", field.TrimFixed(data[516+74:516+90]))

	rt := data[1024:]
	assert.Equal(t, uint16(1), u16(rt, 0), "route count")
	assert.Equal(t, uint16(0), u16(rt, 2))
	assert.Equal(t, "TRIP", field.TrimFixed(rt[4:20]))
	assert.Equal(t, byte(1), rt[20], "visible")
	assert.Equal(t, byte(1), rt[21], "transfer")
	assert.Equal(t, uint16(2), u16(rt, 22), "mark count")
	assert.Equal(t, "ROUTE-0001", field.TrimFixed(rt[24:60]))
	assert.Equal(t, "NYC", field.TrimFixed(rt[60:76]))
	assert.Equal(t, "LA", field.TrimFixed(rt[76:92]))
}

// TestFSHDirectoryInvariants checks entry offsets against the padded block sizes
func TestFSHDirectoryInvariants(t *testing.T) {
	for _, schema := range []SchemaVersion{SchemaV1, SchemaV2} {
		for _, n := range []int{0, 1, 3, 4, 10, 100} {
			waypoints := make([]field.Waypoint, n)
			for i := range waypoints {
				waypoints[i] = field.Waypoint{Lat: float64(i) / 10, Lon: float64(i) / -10, Name: "Mark"}
			}

			opts := tripOptions(true)
			opts.Schema = schema
			data, err := Encode(FormatFSH, waypoints, opts)
			require.NoError(t, err)
			require.Zero(t, len(data)%field.BlockSize, "schema %s n=%d", schema, n)

			doc, err := DecodeFSH(data)
			require.NoError(t, err, "schema %s n=%d", schema, n)
			assert.Equal(t, schema, doc.Schema)

			wantObjects := 2
			if n == 0 {
				wantObjects = 1
			}
			require.Len(t, doc.Directory, wantObjects)

			next := uint32(field.BlockSize)
			for i, e := range doc.Directory {
				assert.Equal(t, next, e.Offset, "schema %s n=%d entry %d", schema, n, i)
				assert.LessOrEqual(t, int(e.Offset+e.Length), len(data))
				next = e.Offset + uint32(field.PaddedLen(int(e.Length)))
			}
			assert.Equal(t, uint32(len(data)), next)
		}
	}
}

func TestFSHRouteNames(t *testing.T) {
	waypoints := []field.Waypoint{
		{Lat: 1, Lon: 1, Name: "  Harbour Entrance Light  "},
		{Lat: 2, Lon: 2, Name: ""},
	}
	data, err := Encode(FormatFSH, waypoints, Options{Group: "Sound, East", IncludeRoute: true})
	require.NoError(t, err)

	doc, err := DecodeFSH(data)
	require.NoError(t, err)
	require.NotNil(t, doc.Route)
	assert.Equal(t, "Sound  East", doc.Route.Name)
	assert.Equal(t, field.RouteIdentifier, doc.Route.ID)
	assert.Equal(t, []string{"Harbour Entrance", "WP"}, doc.Route.Marks)
	assert.Equal(t, "Harbour Entrance", doc.Records[0].Name)
}

func TestFSHNonASCIINames(t *testing.T) {
	waypoints := []field.Waypoint{{Lat: 1, Lon: 1, Name: "Île d'Ouessant"}, {Lat: 2, Lon: 2, Name: "Øresund"}}

	data, err := Encode(FormatFSH, waypoints, Options{Group: "Bretagne"})
	require.NoError(t, err)
	doc, err := DecodeFSH(data)
	require.NoError(t, err)
	assert.Equal(t, "Ile d'Ouessant", doc.Records[0].Name)
	assert.Equal(t, "?resund", doc.Records[1].Name)

	_, err = Encode(FormatFSH, waypoints, Options{Group: "Bretagne", StrictText: true})
	var unenc *field.ErrUnencodable
	require.ErrorAs(t, err, &unenc)
	assert.Equal(t, 'Ø', unenc.Rune)
}

func TestFSHCapacity(t *testing.T) {
	waypoints := make([]field.Waypoint, maxMarks+1)
	_, err := Encode(FormatFSH, waypoints, Options{})
	var capErr *field.ErrCapacity
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, maxMarks, capErr.Max)
}

func TestFSHUnknownSchema(t *testing.T) {
	_, err := Encode(FormatFSH, trip, Options{Schema: SchemaVersion(7)})
	assert.Error(t, err)
}

func TestBuildDirectoryTooLarge(t *testing.T) {
	objects := make([]object, 50)
	for i := range objects {
		objects[i] = object{typ: ObjectWaypointsV1, block: &field.Block{}}
	}
	_, _, err := buildDirectory(objects)
	var capErr *field.ErrCapacity
	require.ErrorAs(t, err, &capErr)
}
