package main

import (
	"fmt"

	"github.com/beetlebugorg/rayexport/pkg/rayexport"
	"github.com/spf13/cobra"
)

func convertCommand(a *app) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT GROUP",
		Short: "Convert one waypoint file",
		Long: `Convert reads INPUT (.csv, .gpx or .nmea) and writes OUTPUT in the format given
by its extension: .rwf, .fsh, or RayTech text for anything else. GROUP names
the waypoint collection and, with --route, the route.`,
		Example: `  rayexport convert marks.gpx marks.fsh SOUND --route
  rayexport convert marks.csv marks.txt TRIP --bbox -73.8,40.9,-72.0,41.4`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output, group := args[0], args[1], args[2]

			cfg := a.cfg.Export
			cfg.Group = group
			flags.apply(cmd.Flags(), &cfg)

			opts, err := flags.options(cfg)
			if err != nil {
				return err
			}
			opts.Logger = a.log

			n, err := rayexport.Convert(input, output, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d waypoints to %s\n", n, output)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
