package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
)

func main() {
	waypoints := []rayexport.Waypoint{
		{Lat: 41.2683, Lon: -72.8851, Name: "New Haven Bkwtr"},
		{Lat: 41.1700, Lon: -71.5800, Name: "Block Island"},
		{Lat: 41.5200, Lon: -70.6700, Name: "Woods Hole"},
	}

	opts := rayexport.DefaultExportOptions()
	opts.Group = "SUMMER"
	opts.IncludeRoute = true

	// Write an RL90 flash file with a route through every waypoint
	if err := rayexport.ExportFile("summer.fsh", waypoints, opts); err != nil {
		log.Fatal(err)
	}

	// The same waypoints for RayTech; the format follows the extension
	opts.Format = ""
	if err := rayexport.ExportFile("summer.txt", waypoints, opts); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Exported %d waypoints\n", len(waypoints))
}
