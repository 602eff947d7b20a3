package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mkroot/internal/app"
	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	mode := linkModeValue(domain.LinkModeHardlink)

	cmd := &cobra.Command{
		Use:   "build --target DIR [-- command...]",
		Short: "Build the configured root trees",
		Long: "Build wipes and materializes every configured profile under the target directory.\n" +
			"Arguments after -- are run in the target directory once every profile is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var passthrough []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				if dash > 0 {
					return zerr.With(zerr.New("unexpected arguments before --"), "args", args[:dash])
				}
				passthrough = args[dash:]
			} else if len(args) > 0 {
				return zerr.With(zerr.New("unexpected arguments, separate the passthrough command with --"), "args", args)
			}

			if copyMode, _ := cmd.Flags().GetBool("copy"); copyMode {
				mode = linkModeValue(domain.LinkModeCopy)
			}
			if linkMode, _ := cmd.Flags().GetBool("link"); linkMode {
				mode = linkModeValue(domain.LinkModeHardlink)
			}

			configPath, _ := cmd.Flags().GetString("config")
			target, _ := cmd.Flags().GetString("target")
			profiles, _ := cmd.Flags().GetStringArray("profile")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath:  configPath,
				Target:      target,
				LinkMode:    domain.LinkMode(mode),
				Profiles:    profiles,
				Passthrough: passthrough,
			})
		},
	}

	cmd.Flags().StringP("target", "t", "", "Directory the trees are built in")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().Bool("link", false, "Install files as hardlinks (default)")
	cmd.Flags().Bool("copy", false, "Install files as independent copies")
	cmd.Flags().Var(&mode, "link-mode", "Install mode: hardlink or copy")
	cmd.MarkFlagsMutuallyExclusive("link", "copy", "link-mode")
	cmd.Flags().StringArrayP("profile", "p", nil, "Only build the named profile (repeatable)")

	return cmd
}
