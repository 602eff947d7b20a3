package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/mkroot/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PACKAGE...",
		Short: "Print the host files a set of packages resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noRecursive, _ := cmd.Flags().GetBool("no-recursive")
			excludePackages, _ := cmd.Flags().GetStringSlice("exclude-package")
			includePrefixes, _ := cmd.Flags().GetStringSlice("include-prefix")
			excludePrefixes, _ := cmd.Flags().GetStringSlice("exclude-prefix")

			files, err := c.app.Resolve(app.ResolveOptions{
				Packages:        args,
				ExcludePackages: excludePackages,
				Recursive:       !noRecursive,
				IncludePrefixes: includePrefixes,
				ExcludePrefixes: excludePrefixes,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range files {
				_, _ = fmt.Fprintln(out, f)
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-recursive", false, "Do not follow dependencies")
	cmd.Flags().StringSlice("exclude-package", nil, "Packages that contribute nothing and are not traversed")
	cmd.Flags().StringSlice("include-prefix", nil, "Keep only files under these prefixes")
	cmd.Flags().StringSlice("exclude-prefix", nil, "Drop files under these prefixes")

	return cmd
}
