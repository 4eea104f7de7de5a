package emitter

import (
	"fmt"
	"math"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/sirupsen/logrus"
)

// RL90 flash-file container layout.
//
// A file is a directory block followed by one block per object, each block
// padded to field.BlockSize:
//
//	offset 0    directory: magic[16] count:u16 reserved:u16 entry*count
//	                       entry = type:u16 offset:u32 length:u32
//	offset 512  waypoint block
//	...         route block (optional)
//
// Entry offsets are absolute. Entry lengths are the unpadded content length.
// All integers and floats are little-endian.
const (
	// Magic is the directory tag, zero-filled to MagicLength bytes.
	Magic       = "RL90 FLASH FILE"
	MagicLength = 16

	directoryHeaderSize = MagicLength + 2 + 2
	directoryEntrySize  = 2 + 4 + 4

	// WaypointRecordSize is the size of one waypoint record.
	// lat, lon, time, six reserved doubles, two flags, name, group, identifier.
	WaypointRecordSize = 8*3 + 8*6 + 2 + field.MaxNameLength*2 + field.IdentifierLength

	// routeHeaderSize is the fixed part of a route before its mark names.
	routeHeaderSize = field.MaxNameLength + 1 + 1 + 2 + field.IdentifierLength

	// blockHeaderSize is the count/reserved prefix used by SchemaV2 blocks.
	blockHeaderSize = 4

	// reservedDoubles are range, bearing and other derived values left at zero.
	reservedDoubles = 6

	maxMarks = math.MaxUint16
)

// SchemaVersion selects one of the two object-type code schemes seen in
// RL90 flash files. A file uses exactly one of them.
type SchemaVersion int

const (
	// SchemaV1 uses type codes 1 (waypoints) and 2 (route), with records
	// written back to back and no block header.
	SchemaV1 SchemaVersion = 1

	// SchemaV2 uses type codes 0x0110 (waypoints) and 0x0120 (route), and
	// prefixes each block with a record count and a reserved word.
	SchemaV2 SchemaVersion = 2
)

// ObjectType is the type code of a directory entry.
type ObjectType uint16

// Object type codes by schema.
const (
	ObjectWaypointsV1 ObjectType = 1
	ObjectRouteV1     ObjectType = 2
	ObjectWaypointsV2 ObjectType = 0x0110
	ObjectRouteV2     ObjectType = 0x0120
)

// String returns the schema name used in configuration ("v1" or "v2").
func (s SchemaVersion) String() string {
	switch s {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	default:
		return fmt.Sprintf("SchemaVersion(%d)", int(s))
	}
}

// ParseSchema converts "v1"/"1" or "v2"/"2" to a SchemaVersion.
func ParseSchema(name string) (SchemaVersion, error) {
	switch name {
	case "v1", "V1", "1", "":
		return SchemaV1, nil
	case "v2", "V2", "2":
		return SchemaV2, nil
	default:
		return 0, fmt.Errorf("unknown flash-file schema %q (want v1 or v2)", name)
	}
}

// WaypointType returns the directory code for the waypoint object.
func (s SchemaVersion) WaypointType() ObjectType {
	if s == SchemaV2 {
		return ObjectWaypointsV2
	}
	return ObjectWaypointsV1
}

// RouteType returns the directory code for the route object.
func (s SchemaVersion) RouteType() ObjectType {
	if s == SchemaV2 {
		return ObjectRouteV2
	}
	return ObjectRouteV1
}

func (s SchemaVersion) blockHeader() bool {
	return s == SchemaV2
}

func (o Options) schema() SchemaVersion {
	if o.Schema == 0 {
		return SchemaV1
	}
	return o.Schema
}

// DirEntry is one object in the container directory.
type DirEntry struct {
	Type   ObjectType
	Offset uint32
	Length uint32
}

// fshEmitter writes the RL90 flash-file container.
type fshEmitter struct{}

func (fshEmitter) Format() Format { return FormatFSH }

func (fshEmitter) Encode(waypoints []field.Waypoint, opts Options) ([]byte, error) {
	schema := opts.schema()
	if schema != SchemaV1 && schema != SchemaV2 {
		return nil, fmt.Errorf("unknown flash-file schema %d", int(schema))
	}
	if len(waypoints) > maxMarks {
		return nil, &field.ErrCapacity{What: "waypoint count", Count: len(waypoints), Max: maxMarks}
	}

	records := prepare(waypoints, opts)

	// 1. Waypoint block
	wpBlock := field.Block{Strict: opts.StrictText}
	if schema.blockHeader() {
		wpBlock.Uint16(uint16(len(records)))
		wpBlock.Uint16(0)
	}
	for _, r := range records {
		writeWaypointRecord(&wpBlock, r)
	}
	if err := wpBlock.Err(); err != nil {
		return nil, err
	}

	blocks := []object{{typ: schema.WaypointType(), block: &wpBlock}}

	// 2. Route block
	if rt := deriveRoute(records, opts); rt != nil {
		rtBlock := field.Block{Strict: opts.StrictText}
		if schema.blockHeader() {
			rtBlock.Uint16(1)
			rtBlock.Uint16(0)
		}
		writeRoute(&rtBlock, rt)
		if err := rtBlock.Err(); err != nil {
			return nil, err
		}
		blocks = append(blocks, object{typ: schema.RouteType(), block: &rtBlock})
	}

	// 3. Directory, then everything concatenated
	dir, entries, err := buildDirectory(blocks)
	if err != nil {
		return nil, err
	}

	size := len(dir)
	for _, obj := range blocks {
		size += obj.block.PaddedLen()
	}

	out := make([]byte, 0, size)
	out = append(out, dir...)
	for _, obj := range blocks {
		out = append(out, obj.block.Padded()...)
	}

	log := opts.logger()
	for _, e := range entries {
		log.WithFields(logrus.Fields{
			"type":   fmt.Sprintf("0x%04x", uint16(e.Type)),
			"offset": e.Offset,
			"length": e.Length,
		}).Debug("flash-file object")
	}

	return out, nil
}

type object struct {
	typ   ObjectType
	block *field.Block
}

func writeWaypointRecord(b *field.Block, r Record) {
	b.Float64(r.Lat)
	b.Float64(r.Lon)
	b.Float64(r.Time)
	for i := 0; i < reservedDoubles; i++ {
		b.Float64(0)
	}
	b.Byte(1) // visible
	b.Byte(0) // locked
	b.Text(r.Name, field.MaxNameLength)
	b.Text(r.Group, field.MaxNameLength)
	b.Text(r.ID, field.IdentifierLength)
}

func writeRoute(b *field.Block, rt *Route) {
	b.Text(rt.Name, field.MaxNameLength)
	b.Byte(1) // visible
	b.Byte(1) // marked for transfer
	b.Uint16(uint16(len(rt.Marks)))
	b.Text(rt.ID, field.IdentifierLength)
	for _, mark := range rt.Marks {
		b.Text(mark, field.MaxNameLength)
	}
}

// buildDirectory lays out the objects after the directory block and returns
// the padded directory along with the entries it describes.
func buildDirectory(objects []object) ([]byte, []DirEntry, error) {
	size := directoryHeaderSize + directoryEntrySize*len(objects)
	if size > field.BlockSize {
		return nil, nil, &field.ErrCapacity{
			What:  "directory size",
			Count: size,
			Max:   field.BlockSize,
		}
	}

	var dir field.Block
	dir.Text(Magic, MagicLength)
	dir.Uint16(uint16(len(objects)))
	dir.Uint16(0) // reserved

	entries := make([]DirEntry, len(objects))
	offset := uint64(field.BlockSize)
	for i, obj := range objects {
		if offset > math.MaxUint32 {
			return nil, nil, &field.ErrCapacity{What: "container size", Count: int(offset), Max: math.MaxUint32}
		}
		entries[i] = DirEntry{
			Type:   obj.typ,
			Offset: uint32(offset),
			Length: uint32(obj.block.Len()),
		}
		dir.Uint16(uint16(entries[i].Type))
		dir.Uint32(entries[i].Offset)
		dir.Uint32(entries[i].Length)

		// Blocks are laid out by padded size; the entry records content size.
		offset += uint64(obj.block.PaddedLen())
	}

	return dir.Padded(), entries, nil
}
