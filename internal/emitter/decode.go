package emitter

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/field"
	"gopkg.in/ini.v1"
)

// Document is the decoded content of an export file.
//
// Schema and Directory are only set for FormatFSH. Route is nil when the file
// carries no route.
type Document struct {
	Format    Format
	Schema    SchemaVersion
	Directory []DirEntry
	Records   []Record
	Route     *Route
}

// Decode parses data written in format.
func Decode(format Format, data []byte) (*Document, error) {
	switch format {
	case FormatText:
		return DecodeText(data)
	case FormatRWF:
		return DecodeRWF(data)
	case FormatFSH:
		return DecodeFSH(data)
	default:
		return nil, &ErrUnsupportedFormat{Format: string(format)}
	}
}

// DecodeFSH parses an RL90 flash-file container.
//
// The schema is detected from the first directory entry; entries using codes
// from the other schema are rejected. Block alignment, entry bounds and the
// directory ordering are all checked.
func DecodeFSH(data []byte) (*Document, error) {
	invalid := func(format string, args ...any) error {
		return &ErrInvalidContainer{Format: FormatFSH, Reason: fmt.Sprintf(format, args...)}
	}

	if len(data) < field.BlockSize || len(data)%field.BlockSize != 0 {
		return nil, invalid("length %d is not a non-zero multiple of %d", len(data), field.BlockSize)
	}
	if magic := field.TrimFixed(data[:MagicLength]); magic != Magic {
		return nil, invalid("bad magic %q", magic)
	}

	count := int(binary.LittleEndian.Uint16(data[MagicLength:]))
	if count == 0 || directoryHeaderSize+count*directoryEntrySize > field.BlockSize {
		return nil, invalid("object count %d does not fit the directory", count)
	}

	doc := &Document{Format: FormatFSH}
	prevEnd := uint64(field.BlockSize)
	for i := 0; i < count; i++ {
		p := directoryHeaderSize + i*directoryEntrySize
		e := DirEntry{
			Type:   ObjectType(binary.LittleEndian.Uint16(data[p:])),
			Offset: binary.LittleEndian.Uint32(data[p+2:]),
			Length: binary.LittleEndian.Uint32(data[p+6:]),
		}
		end := uint64(e.Offset) + uint64(e.Length)
		switch {
		case e.Offset%field.BlockSize != 0:
			return nil, invalid("object %d offset %d is not block aligned", i, e.Offset)
		case uint64(e.Offset) < prevEnd:
			return nil, invalid("object %d offset %d overlaps the previous block", i, e.Offset)
		case end > uint64(len(data)):
			return nil, invalid("object %d extends past end of file", i)
		}
		prevEnd = uint64(field.PaddedLen(int(end)))
		doc.Directory = append(doc.Directory, e)
	}

	switch doc.Directory[0].Type {
	case ObjectWaypointsV1:
		doc.Schema = SchemaV1
	case ObjectWaypointsV2:
		doc.Schema = SchemaV2
	default:
		return nil, invalid("first object has type 0x%04x, want a waypoint block", uint16(doc.Directory[0].Type))
	}

	for i, e := range doc.Directory {
		content := data[e.Offset : e.Offset+e.Length]
		var err error
		switch e.Type {
		case doc.Schema.WaypointType():
			if doc.Records != nil {
				return nil, invalid("more than one waypoint block")
			}
			doc.Records, err = decodeWaypointBlock(content, doc.Schema)
		case doc.Schema.RouteType():
			if doc.Route != nil {
				return nil, invalid("more than one route block")
			}
			doc.Route, err = decodeRouteBlock(content, doc.Schema)
		default:
			return nil, invalid("object %d has type 0x%04x, not valid in schema %s", i, uint16(e.Type), doc.Schema)
		}
		if err != nil {
			return nil, invalid("object %d: %v", i, err)
		}
	}

	return doc, nil
}

func decodeWaypointBlock(b []byte, schema SchemaVersion) ([]Record, error) {
	n := len(b) / WaypointRecordSize
	if schema.blockHeader() {
		if len(b) < blockHeaderSize {
			return nil, errors.New("waypoint block header truncated")
		}
		n = int(binary.LittleEndian.Uint16(b))
		b = b[blockHeaderSize:]
	}
	if len(b) != n*WaypointRecordSize {
		return nil, fmt.Errorf("waypoint block holds %d bytes, want %d records of %d", len(b), n, WaypointRecordSize)
	}

	records := make([]Record, n)
	for i := range records {
		rec := b[i*WaypointRecordSize : (i+1)*WaypointRecordSize]
		// Skip the reserved doubles and the two flag bytes.
		text := rec[8*3+8*reservedDoubles+2:]
		records[i] = Record{
			Lat:   field.Float64At(rec, 0),
			Lon:   field.Float64At(rec, 8),
			Time:  field.Float64At(rec, 16),
			Name:  field.TrimFixed(text[:field.MaxNameLength]),
			Group: field.TrimFixed(text[field.MaxNameLength : field.MaxNameLength*2]),
			ID:    field.TrimFixed(text[field.MaxNameLength*2:]),
		}
	}
	return records, nil
}

func decodeRouteBlock(b []byte, schema SchemaVersion) (*Route, error) {
	if schema.blockHeader() {
		if len(b) < blockHeaderSize {
			return nil, errors.New("route block header truncated")
		}
		if n := binary.LittleEndian.Uint16(b); n != 1 {
			return nil, fmt.Errorf("route block holds %d routes, want 1", n)
		}
		b = b[blockHeaderSize:]
	}
	if len(b) < routeHeaderSize {
		return nil, errors.New("route header truncated")
	}

	marks := int(binary.LittleEndian.Uint16(b[field.MaxNameLength+2:]))
	if len(b) != routeHeaderSize+marks*field.MaxNameLength {
		return nil, fmt.Errorf("route block holds %d bytes, want %d marks", len(b), marks)
	}

	rt := &Route{
		Name:  field.TrimFixed(b[:field.MaxNameLength]),
		ID:    field.TrimFixed(b[field.MaxNameLength+4 : routeHeaderSize]),
		Marks: make([]string, marks),
	}
	for i := range rt.Marks {
		p := routeHeaderSize + i*field.MaxNameLength
		rt.Marks[i] = field.TrimFixed(b[p : p+field.MaxNameLength])
	}
	return rt, nil
}

// DecodeText parses a RayTech text file. The banner must be intact.
func DecodeText(data []byte) (*Document, error) {
	text := strings.ReplaceAll(string(data), CRLF, LF)
	lines := strings.SplitN(text, LF, len(TextBanner)+1)
	if len(lines) < len(TextBanner) || lines[0] != TextBanner[0] {
		return nil, &ErrInvalidContainer{Format: FormatText, Reason: "missing RayTech banner"}
	}

	doc := &Document{Format: FormatText}
	if len(lines) == len(TextBanner) {
		return doc, nil
	}

	r := csv.NewReader(strings.NewReader(lines[len(TextBanner)]))
	r.FieldsPerRecord = TextFields
	r.LazyQuotes = true
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ErrInvalidContainer{Format: FormatText, Reason: err.Error()}
		}

		rec := Record{Group: fields[0], Name: fields[1], ID: fields[20]}
		for _, f := range []struct {
			dst *float64
			src string
		}{{&rec.Lat, fields[2]}, {&rec.Lon, fields[3]}, {&rec.Time, fields[18]}} {
			if *f.dst, err = strconv.ParseFloat(f.src, 64); err != nil {
				line, _ := r.FieldPos(0)
				return nil, &ErrInvalidContainer{
					Format: FormatText,
					Reason: fmt.Sprintf("record at line %d: %v", line+len(TextBanner), err),
				}
			}
		}
		doc.Records = append(doc.Records, rec)
	}

	return doc, nil
}

// DecodeRWF parses a key/value waypoint file.
func DecodeRWF(data []byte) (*Document, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: false,
	}, data)
	if err != nil {
		return nil, &ErrInvalidContainer{Format: FormatRWF, Reason: err.Error()}
	}

	type indexed struct {
		i   int
		rec Record
	}
	var wps []indexed

	doc := &Document{Format: FormatRWF}
	for _, sec := range f.Sections() {
		name := sec.Name()
		switch {
		case name == ini.DefaultSection:
			continue
		case name == "Rt0":
			doc.Route = decodeRWFRoute(sec)
		case strings.HasPrefix(name, "Wp"):
			i, err := strconv.Atoi(strings.TrimPrefix(name, "Wp"))
			if err != nil {
				return nil, &ErrInvalidContainer{Format: FormatRWF, Reason: fmt.Sprintf("bad section [%s]", name)}
			}
			rec, err := decodeRWFWaypoint(sec)
			if err != nil {
				return nil, &ErrInvalidContainer{Format: FormatRWF, Reason: fmt.Sprintf("[%s]: %v", name, err)}
			}
			wps = append(wps, indexed{i: i, rec: rec})
		}
	}

	sort.SliceStable(wps, func(a, b int) bool { return wps[a].i < wps[b].i })
	for _, w := range wps {
		doc.Records = append(doc.Records, w.rec)
	}

	return doc, nil
}

func decodeRWFWaypoint(sec *ini.Section) (Record, error) {
	rec := Record{
		Group: sec.Key("Loc").String(),
		Name:  sec.Key("Name").String(),
		ID:    sec.Key("GUID").String(),
	}

	var err error
	if rec.Lat, err = sec.Key("Lat").Float64(); err != nil {
		return rec, fmt.Errorf("Lat: %w", err)
	}
	if rec.Lon, err = sec.Key("Long").Float64(); err != nil {
		return rec, fmt.Errorf("Long: %w", err)
	}
	if rec.Time, err = sec.Key("Time").Float64(); err != nil {
		return rec, fmt.Errorf("Time: %w", err)
	}
	return rec, nil
}

func decodeRWFRoute(sec *ini.Section) *Route {
	rt := &Route{
		Name: sec.Key("Name").String(),
		ID:   sec.Key("Guid").String(),
	}
	for i := 0; sec.HasKey("Mk" + strconv.Itoa(i)); i++ {
		rt.Marks = append(rt.Marks, sec.Key("Mk"+strconv.Itoa(i)).String())
	}
	return rt
}
