package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/iconcheck/internal/assets"
	"github.com/fulmenhq/iconcheck/pkg/config"
	"github.com/fulmenhq/iconcheck/pkg/exitcode"
	"github.com/fulmenhq/iconcheck/pkg/manifest"
	"github.com/spf13/cobra"
)

func newManifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Work with the ignore manifest",
	}
	cmd.AddCommand(newManifestValidateCommand())
	cmd.AddCommand(newManifestInitCommand())
	return cmd
}

func newManifestValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate the ignore manifest against its schema",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runManifestValidate,
	}
}

func newManifestInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter ignore manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runManifestInit,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	return cmd
}

// manifestPath returns the explicit argument or the configured manifest of
// the current directory
func manifestPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(".", configFile)
	if err != nil {
		return "", err
	}
	return config.Resolve(".", cfg.IgnoreManifest), nil
}

func runManifestValidate(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(cmd, args)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return withExitCode(exitcode.ManifestError, fmt.Errorf("%w: %s", manifest.ErrManifestNotFound, path))
	}
	res, err := manifest.ValidateIgnoreManifest(path, data)
	if err != nil {
		return withExitCode(exitcode.ManifestError, err)
	}

	out := cmd.OutOrStdout()
	if res.Valid {
		_, _ = fmt.Fprintf(out, "%s: valid\n", path)
		return nil
	}
	for _, e := range res.Errors {
		_, _ = fmt.Fprintf(out, "%s: %s: %s\n", path, e.Path, e.Message)
	}
	return withExitCode(exitcode.ManifestError,
		fmt.Errorf("%w: %s has %d schema error(s)", manifest.ErrMalformed, path, len(res.Errors)))
}

func runManifestInit(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(cmd, args)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	info, ok := assets.Lookup("ignore-manifest")
	if !ok {
		return errors.New("ignore manifest template not embedded")
	}
	tmpl, ok := assets.GetTemplate(info.Path)
	if !ok {
		return fmt.Errorf("template %s not found", info.Path)
	}
	if err := os.WriteFile(path, tmpl, 0o644); err != nil { // #nosec G306 -- manifest is checked into the repository
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
