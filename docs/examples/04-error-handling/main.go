package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
)

func safeConvert(input, output string) (int, error) {
	n, err := rayexport.Convert(input, output, rayexport.ConvertOptions{
		ExportOptions: rayexport.ExportOptions{Group: "TRIP", StrictText: true},
	})
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("input file not found: %s", input)
		}

		// Nothing survived loading
		if errors.Is(err, rayexport.ErrNoWaypoints) {
			log.Printf("Warning: %s contains no usable waypoints", input)
			return 0, nil
		}

		// Log detailed error
		log.Printf("Failed to convert %s: %v", input, err)
		return 0, err
	}

	return n, nil
}

func main() {
	// Convert with strict text: names that cannot be stored as ASCII fail
	n, err := safeConvert("marks.csv", "marks.fsh")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Converted %d waypoints\n", n)

	// Try a non-existent input
	_, err = safeConvert("missing.csv", "missing.fsh")
	if err != nil {
		log.Printf("Expected error: %v", err)
	}
}
