package cmd

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/iconcheck/internal/icons"
	"github.com/spf13/cobra"
)

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "slug <display name>",
		Short:   "Print the icon slug of a brand display name",
		Example: `  iconcheck slug "Barnes & Noble"   # Barnes_Noble`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), icons.Slugify(strings.Join(args, " ")))
			return err
		},
	}
}
