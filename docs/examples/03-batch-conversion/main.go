package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
	"github.com/sirupsen/logrus"
)

func main() {
	jobs := []rayexport.Job{
		{Input: "north.gpx", Output: "north.fsh"},
		{Input: "south.csv", Output: "south.fsh"},
		{Input: "log.nmea", Output: "log.rwf"},
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	opts := rayexport.DefaultBatchOptions()
	opts.Group = "FLEET"
	opts.Workers = 2
	opts.Logger = logger
	opts.Progress = func(done, total int) {
		fmt.Printf("Progress: %d/%d\n", done, total)
	}

	results, errs := rayexport.ConvertBatch(jobs, opts)
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("FAIL %s: %v\n", r.Job.Input, r.Err)
			continue
		}
		fmt.Printf("ok   %s -> %s (%d waypoints)\n", r.Job.Input, r.Job.Output, r.Waypoints)
	}

	if len(errs) > 0 {
		log.Fatalf("%d of %d conversions failed", len(errs), len(jobs))
	}
}
