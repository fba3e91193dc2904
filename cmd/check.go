/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fulmenhq/iconcheck/internal/assess"
	"github.com/fulmenhq/iconcheck/pkg/config"
	"github.com/fulmenhq/iconcheck/pkg/exitcode"
	"github.com/fulmenhq/iconcheck/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type checkOptions struct {
	checks      []string
	skip        []string
	format      string
	concurrency int
	timeout     time.Duration
	output      string
}

func newCheckCommand() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [repo]",
		Short: "Run the consistency checks",
		Long: `Run the consistency checks against an icon repository.
The repo argument is optional and defaults to the current directory.
Errors fail the run (exit code 1); warnings are advisory.

Checks: ` + strings.Join(assess.KnownChecks(), ", "),
		Example: `  iconcheck check
  iconcheck check --skip device-detector
  iconcheck check --format json --output report.json
  iconcheck check --concurrency 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	opts.addFlags(cmd.Flags())
	return cmd
}

func (o *checkOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.checks, "checks", nil, "Only run these checks (comma-separated)")
	fs.StringSliceVar(&o.skip, "skip", nil, "Skip these checks (comma-separated)")
	fs.StringVar(&o.format, "format", string(assess.FormatText), "Report format (text|json)")
	fs.IntVar(&o.concurrency, "concurrency", 1, "Number of checks to run in parallel")
	fs.DurationVar(&o.timeout, "timeout", 5*time.Minute, "Per-check timeout (0 disables)")
	fs.StringVarP(&o.output, "output", "o", "", "Write the report to a file instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("repository %s is not a directory", root)
	}

	format, err := assess.ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(root, configFile)
	if err != nil {
		return err
	}

	ws := assess.NewWorkspace(root, *cfg)
	acfg := assess.DefaultAssessmentConfig()
	acfg.SelectedChecks = opts.checks
	acfg.SkippedChecks = opts.skip
	acfg.Concurrency = opts.concurrency
	acfg.Timeout = opts.timeout

	report, err := assess.NewAssessmentEngine().RunAssessment(cmd.Context(), ws, acfg)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	formatter := assess.NewFormatter(format)
	if opts.output != "" {
		f, err := os.Create(filepath.Clean(opts.output))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.output, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	} else {
		formatter.SetColor(useColor(cmd))
	}
	if err := formatter.WriteReport(out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if report.Failed() {
		return withExitCode(exitcode.ChecksFailed,
			fmt.Errorf("%d error(s) in %d failed check(s)", report.Summary.Errors, report.Summary.FailedChecks))
	}
	logger.Debug("all checks passed")
	return nil
}
