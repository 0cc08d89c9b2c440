package main

import (
	"io"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
	theme      string
	breakpoint string
	width      int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sdui",
		Short:         "sdui renders server-driven UI documents in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Settings file (default ~/.config/sdui/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Theme name (default, plain)")
	cmd.PersistentFlags().StringVar(&flags.breakpoint, "breakpoint", "", "Pin the breakpoint (base, sm, md, lg, xl)")
	cmd.PersistentFlags().IntVar(&flags.width, "width", 0, "Render width in columns (default: terminal width)")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newTypesCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
