package main

import (
	"fmt"
	"io"

	"github.com/beetlebugorg/rayexport/internal/field"
	"github.com/beetlebugorg/rayexport/pkg/rayexport"
	"github.com/spf13/cobra"
)

func inspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Decode an export file and print its contents",
		Long: `Inspect validates a .txt, .rwf or .fsh export file and prints its waypoint
records and route. For flash files the directory is listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := rayexport.DecodeFile(args[0])
			if err != nil {
				return err
			}
			a.log.WithField("path", args[0]).Debug("export decoded")

			printDocument(cmd.OutOrStdout(), args[0], doc)
			return nil
		},
	}
}

func printDocument(w io.Writer, path string, doc *rayexport.Document) {
	fmt.Fprintf(w, "File:      %s\n", path)
	fmt.Fprintf(w, "Format:    %s\n", doc.Format)
	if doc.Format == rayexport.FormatFSH {
		fmt.Fprintf(w, "Schema:    %s\n", doc.Schema)
		fmt.Fprintf(w, "Objects:   %d\n", len(doc.Directory))
		for i, e := range doc.Directory {
			fmt.Fprintf(w, "  [%d] type=0x%04x offset=%d length=%d\n", i, uint16(e.Type), e.Offset, e.Length)
		}
	}

	fmt.Fprintf(w, "Waypoints: %d\n", len(doc.Records))
	for _, r := range doc.Records {
		fmt.Fprintf(w, "  %-10s %-16s %12.6f %12.6f  %s  %s\n",
			r.ID, r.Name, r.Lat, r.Lon, r.Group,
			field.FromOADate(r.Time).Format("2006-01-02 15:04:05"))
	}

	if doc.Route != nil {
		fmt.Fprintf(w, "Route:     %s (%s), %d marks\n", doc.Route.Name, doc.Route.ID, len(doc.Route.Marks))
		for i, m := range doc.Route.Marks {
			fmt.Fprintf(w, "  %3d %s\n", i+1, m)
		}
	}
}
