/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/fulmenhq/iconcheck/pkg/buildinfo"
	"github.com/fulmenhq/iconcheck/pkg/exitcode"
	"github.com/fulmenhq/iconcheck/pkg/logger"
	"github.com/spf13/cobra"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iconcheck",
		Short: "Consistency checks for icon asset repositories",
		Long: `iconcheck walks an icon repository (source tree, compiled tree, manifests
and packaging script) and reports inconsistencies as errors or warnings.

Examples:
   iconcheck check                       # Run every check on the current directory
   iconcheck check ../matomo-icons       # Run on another repository
   iconcheck check --checks square,symlinks
   iconcheck manifest validate           # Validate tests-ignore.yml
   iconcheck slug "Barnes & Noble"       # Print the icon slug of a brand`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("config", "", "Config file (default: iconcheck.yaml in the repository)")
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version
	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("iconcheck {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newManifestCommand())
	cmd.AddCommand(newSlugCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code != exitcode.ChecksFailed {
			logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		}
		os.Exit(code)
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// exitError carries the process exit code of a failed command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode maps a command error to a process exit code. Errors without an
// explicit code are usage or configuration problems.
func exitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitcode.ConfigError
}

// useColor reports whether output may carry ANSI colours
func useColor(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && os.Getenv("NO_COLOR") == ""
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  useColor(cmd),
		JSON:      jsonLogs,
		Component: "iconcheck",
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
	logger.SetOutput(cmd.ErrOrStderr())
}
