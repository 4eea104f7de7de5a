package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
)

func main() {
	// Load a season's worth of marks
	waypoints, err := rayexport.Load("marks.gpx", nil)
	if err != nil {
		log.Fatal(err)
	}

	// Long Island Sound only
	sound := rayexport.Bounds{
		MinLon: -73.8, MaxLon: -72.0,
		MinLat: 40.9, MaxLat: 41.4,
	}

	// Query the R-tree index; results keep the input order
	idx := rayexport.NewIndex(waypoints)
	inSound := idx.Within(sound)

	fmt.Printf("All marks:    %d (%s)\n", idx.Len(), idx.Bounds())
	fmt.Printf("In the Sound: %d\n", len(inSound))

	for _, wp := range inSound {
		fmt.Printf("  %-16s %.4f,%.4f\n", wp.Name, wp.Lat, wp.Lon)
	}

	// Convert applies the same filter on the way to a file
	n, err := rayexport.Convert("marks.gpx", "sound.rwf", rayexport.ConvertOptions{
		ExportOptions: rayexport.ExportOptions{Group: "SOUND", IncludeRoute: true},
		Bounds:        &sound,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %d waypoints to sound.rwf\n", n)
}
