package rayexport

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one input file to convert into one output file.
type Job struct {
	Input  string
	Output string
}

// JobResult reports the outcome of one Job.
type JobResult struct {
	Job       Job
	Waypoints int   // Waypoints written; zero on failure
	Err       error // Nil on success
}

// BatchOptions controls parallel conversion and error handling.
type BatchOptions struct {
	// ConvertOptions apply to every job. The output format of each job comes
	// from its Output extension unless Format is set.
	ConvertOptions

	// Workers specifies the number of parallel conversions.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes conversion to continue when individual jobs fail.
	// Failed jobs are reported in the results and the error list.
	// When false, the first error stops collection and is returned alone.
	SkipErrors bool

	// Progress is an optional callback for tracking progress.
	// Called after each job finishes (successfully or with error).
	Progress func(done, total int)
}

// DefaultBatchOptions returns batch options with sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		ConvertOptions: ConvertOptions{ExportOptions: ExportOptions{Group: "WAYPOINTS"}},
		Workers:        runtime.NumCPU(),
		SkipErrors:     true,
	}
}

// ConvertBatch converts jobs on a worker pool.
//
// Each job is an independent Convert call with its own identifier counter, so
// jobs never affect each other's output. Jobs must have distinct outputs;
// writes to the same path are not coordinated.
//
// Results are returned in job order. With SkipErrors, failed jobs appear in
// the results with Err set and are also collected in the returned error list.
// Without it, the first failure is returned alone and results are nil.
// Every job shares one timestamp unless opts.Time is already set.
//
// Example:
//
//	jobs := []rayexport.Job{
//	    {Input: "north.gpx", Output: "north.fsh"},
//	    {Input: "south.csv", Output: "south.rwf"},
//	}
//	results, errs := rayexport.ConvertBatch(jobs, rayexport.DefaultBatchOptions())
//	if len(errs) > 0 {
//	    fmt.Printf("%d of %d conversions failed\n", len(errs), len(results))
//	}
func ConvertBatch(jobs []Job, opts BatchOptions) ([]JobResult, []error) {
	if len(jobs) == 0 {
		return []JobResult{}, nil
	}

	if opts.Time.IsZero() {
		opts.Time = time.Now().UTC()
	}
	log := logger(opts.Logger)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	type indexedResult struct {
		index int
		JobResult
	}

	indexes := make(chan int, len(jobs))
	results := make(chan indexedResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexes {
				job := jobs[index]
				jobOpts := opts.ConvertOptions
				jobOpts.Logger = log.WithFields(logrus.Fields{"job": index, "input": job.Input})

				n, err := Convert(job.Input, job.Output, jobOpts)
				if err != nil {
					err = fmt.Errorf("%s -> %s: %w", job.Input, job.Output, err)
				}
				results <- indexedResult{
					index:     index,
					JobResult: JobResult{Job: job, Waypoints: n, Err: err},
				}
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]JobResult, len(jobs))
	var errs []error
	done := 0

	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(jobs))
		}

		if result.Err != nil {
			log.WithError(result.Err).Warn("conversion failed")
			if !opts.SkipErrors {
				return nil, []error{result.Err}
			}
			errs = append(errs, result.Err)
		}
		ordered[result.index] = result.JobResult
	}

	return ordered, errs
}
