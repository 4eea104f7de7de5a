package main

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/rayexport/internal/config"
	"github.com/beetlebugorg/rayexport/pkg/rayexport"
	"github.com/spf13/pflag"
)

// exportFlags are the export settings that can override configuration.
type exportFlags struct {
	route      bool
	schema     string
	lineEnding string
	strict     bool
	format     string
	bbox       string
}

func (f *exportFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.route, "route", false, "append a route through every waypoint (.rwf and .fsh only)")
	fs.StringVar(&f.schema, "schema", "", "flash-file type codes: v1 or v2")
	fs.StringVar(&f.lineEnding, "line-ending", "", "text line ending: crlf or lf")
	fs.BoolVar(&f.strict, "strict", false, "fail on names that cannot be stored as ASCII")
	fs.StringVar(&f.format, "format", "", "output format: txt, rwf or fsh (default: from output extension)")
	fs.StringVar(&f.bbox, "bbox", "", "keep only waypoints inside minLon,minLat,maxLon,maxLat")
}

// apply copies every flag the user set onto cfg. Unset flags leave the
// configured value in place.
func (f *exportFlags) apply(fs *pflag.FlagSet, cfg *config.ExportConfig) {
	if fs.Changed("route") {
		cfg.Route = f.route
	}
	if fs.Changed("schema") {
		cfg.Schema = f.schema
	}
	if fs.Changed("line-ending") {
		cfg.LineEnding = f.lineEnding
	}
	if fs.Changed("strict") {
		cfg.StrictText = f.strict
	}
}

// options turns configuration and flags into conversion options.
func (f *exportFlags) options(cfg config.ExportConfig) (rayexport.ConvertOptions, error) {
	switch strings.ToLower(cfg.LineEnding) {
	case "crlf", "lf":
	default:
		return rayexport.ConvertOptions{}, fmt.Errorf("unknown line ending %q (want crlf or lf)", cfg.LineEnding)
	}

	schema, err := rayexport.ParseSchema(cfg.Schema)
	if err != nil {
		return rayexport.ConvertOptions{}, err
	}

	opts := rayexport.ConvertOptions{
		ExportOptions: rayexport.ExportOptions{
			Group:        cfg.Group,
			IncludeRoute: cfg.Route,
			Schema:       schema,
			LineEnding:   cfg.LineEndingBytes(),
			StrictText:   cfg.StrictText,
		},
	}

	if f.format != "" {
		if opts.Format, err = rayexport.ParseFormat(f.format); err != nil {
			return rayexport.ConvertOptions{}, err
		}
	}

	if strings.TrimSpace(f.bbox) != "" {
		b, err := rayexport.ParseBounds(f.bbox)
		if err != nil {
			return rayexport.ConvertOptions{}, err
		}
		opts.Bounds = &b
	}

	return opts, nil
}
