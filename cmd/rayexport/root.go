package main

import (
	"fmt"
	"io"

	"github.com/beetlebugorg/rayexport/internal/config"
	"github.com/beetlebugorg/rayexport/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	verbose    bool

	cfg    *config.Config
	log    logrus.FieldLogger
	closer io.Closer
}

// newRootCmd builds the command tree around a. The caller closes a after
// Execute returns, whether or not the command failed.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rayexport",
		Short: "Convert waypoint lists into Raymarine export files",
		Long: `rayexport reads waypoints from CSV, GPX or NMEA files and writes them in the
formats Raymarine chartplotters and RayTech accept: the RayTech text file (.txt),
the RWF waypoint file (.rwf) and the RL90 flash file (.fsh).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./rayexport.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(convertCommand(a))
	root.AddCommand(batchCommand(a))
	root.AddCommand(inspectCommand(a))

	return root
}

// setup loads configuration and builds the logger. Log output goes to the
// command's error stream so that inspect output stays clean.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}

	logger, closer, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	a.cfg = cfg
	a.closer = closer
	a.log = logger.WithFields(logrus.Fields{
		"run":     uuid.NewString(),
		"command": cmd.Name(),
	})
	return nil
}

// close releases the log file, if one was opened. It is safe to call more
// than once.
func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
