package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
	"github.com/spf13/cobra"
)

func batchCommand(a *app) *cobra.Command {
	var (
		flags      exportFlags
		outDir     string
		ext        string
		group      string
		workers    int
		skipErrors bool
	)

	cmd := &cobra.Command{
		Use:   "batch INPUT...",
		Short: "Convert many waypoint files in parallel",
		Long: `Batch converts every INPUT into OUT-DIR, keeping the input base name and
replacing its extension with --ext. Conversions run on a worker pool and each
one numbers its waypoints independently.`,
		Example: `  rayexport batch --out-dir export --ext .fsh --group TRIP trips/*.gpx`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Export
			if cmd.Flags().Changed("group") {
				cfg.Group = group
			}
			flags.apply(cmd.Flags(), &cfg)

			convertOpts, err := flags.options(cfg)
			if err != nil {
				return err
			}

			format, err := rayexport.ParseFormat(ext)
			if err != nil {
				return err
			}
			convertOpts.Format = format

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			jobs := make([]rayexport.Job, len(args))
			for i, input := range args {
				base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
				jobs[i] = rayexport.Job{
					Input:  input,
					Output: filepath.Join(outDir, base+format.Extension()),
				}
			}

			opts := rayexport.BatchOptions{
				ConvertOptions: convertOpts,
				Workers:        a.cfg.Batch.Workers,
				SkipErrors:     a.cfg.Batch.SkipErrors,
				Progress: func(done, total int) {
					fmt.Fprintf(cmd.ErrOrStderr(), "\rConverted %d/%d", done, total)
					if done == total {
						fmt.Fprintln(cmd.ErrOrStderr())
					}
				},
			}
			opts.Logger = a.log
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("skip-errors") {
				opts.SkipErrors = skipErrors
			}

			results, errs := rayexport.ConvertBatch(jobs, opts)
			if !opts.SkipErrors && len(errs) > 0 {
				return errs[0]
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Job.Input, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok   %s -> %s (%d waypoints)\n", r.Job.Input, r.Job.Output, r.Waypoints)
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d conversions failed", len(errs), len(jobs))
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for converted files")
	cmd.Flags().StringVar(&ext, "ext", ".fsh", "output extension: .txt, .rwf or .fsh")
	cmd.Flags().StringVar(&group, "group", "", "waypoint group name (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel conversions (default from config)")
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", true, "keep going when a file fails")
	return cmd
}
