package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: inspect-export FILE")
	}

	doc, err := rayexport.DecodeFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Format:    %s\n", doc.Format)
	if doc.Format == rayexport.FormatFSH {
		fmt.Printf("Schema:    %s\n", doc.Schema)
		for _, e := range doc.Directory {
			fmt.Printf("  object 0x%04x at %d, %d bytes\n", uint16(e.Type), e.Offset, e.Length)
		}
	}

	fmt.Printf("Waypoints: %d\n", len(doc.Records))
	for _, r := range doc.Records {
		fmt.Printf("  %s %-16s %.6f,%.6f\n", r.ID, r.Name, r.Lat, r.Lon)
	}

	if doc.Route != nil {
		fmt.Printf("Route %q: %d marks\n", doc.Route.Name, len(doc.Route.Marks))
	}
}
