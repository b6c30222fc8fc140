package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rollcall/internal"
	"rollcall/internal/config"
	"rollcall/internal/logger"
	"rollcall/internal/pipeline"
)

var version = "dev"

type options struct {
	dir        string
	roster     string
	export     string
	format     string
	output     string
	statusCode bool
	quiet      bool
	logLevel   string
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rollcall",
		Short: "Reconcile a meeting export against the expected participants",
		Long: `rollcall compares the expected participants roster with a Teams or Zoom
participant export and writes who was present, absent or unrecognized.

Without flags it reads expected_participants*.csv and the single meeting
export found in the current directory and writes attendance.csv.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, stdout, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dir, "dir", "", "directory to search for inputs (default: current directory)")
	flags.StringVar(&opts.roster, "roster", "", "roster file (default: expected_participants*.csv in --dir)")
	flags.StringVar(&opts.export, "export", "", "meeting export file, or a saved .eml carrying it")
	flags.StringVar(&opts.format, "format", "", "export format: "+formatNames())
	flags.StringVarP(&opts.output, "output", "o", "", "report path; .xlsx writes a workbook (default: attendance.csv)")
	flags.BoolVar(&opts.statusCode, "status-code", false, "include the Status Code column (default depends on --format)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the result table")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error")

	check := &cobra.Command{
		Use:   "check",
		Short: "Reconcile and write the attendance report (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, stdout, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(stdout, "rollcall", version)
		},
	}

	root.AddCommand(check, versionCmd)
	return root
}

func formatNames() string {
	names := []string{string(internal.FormatAuto)}
	for _, f := range internal.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

func runCheck(cmd *cobra.Command, stdout io.Writer, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := pipeline.NewRunner(cfg, log).Run(ctx)
	if err != nil {
		return err
	}
	log.Debug("run complete",
		zap.String("roster", summary.RosterPath),
		zap.String("export", summary.ExportName),
		zap.String("format", string(summary.Format)))

	if !opts.quiet {
		fmt.Fprintln(stdout, pipeline.RenderTable(summary.Result.Rows, summary.StatusCode))
		fmt.Fprintln(stdout)
	}
	fmt.Fprintf(stdout, "Saved to %s\n", summary.OutputPath)
	return nil
}

// applyFlags lets explicitly set flags override environment configuration.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = opts.dir
	}
	if flags.Changed("roster") {
		cfg.RosterPath = opts.roster
	}
	if flags.Changed("export") {
		cfg.ExportPath = opts.export
	}
	if flags.Changed("format") {
		cfg.Format = internal.ExportFormat(strings.ToLower(strings.TrimSpace(opts.format)))
	}
	if flags.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if flags.Changed("status-code") {
		enabled := opts.statusCode
		cfg.StatusCode = &enabled
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(opts.logLevel)
	}
}

func Execute() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		l, logErr := logger.New(logger.Config{Level: "error", Format: "console"})
		if logErr == nil {
			l.Error("rollcall failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
