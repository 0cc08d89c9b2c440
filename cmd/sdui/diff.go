package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/tui"
	"github.com/alexisbeaulieu97/sdui/pkg/diff"
)

// sampleWidths is the width each breakpoint is drawn at when no width is
// fixed.
var sampleWidths = map[responsive.Breakpoint]int{
	responsive.Base: 36,
	responsive.SM:   48,
	responsive.MD:   72,
	responsive.LG:   90,
	responsive.XL:   120,
}

type diffOptions struct {
	From string
	To   string
}

func newDiffCmd(root *rootFlags) *cobra.Command {
	opts := diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <file> [other-file]",
		Short: "Compare renderings across breakpoints or documents",
		Long: `Diff renders one document at two breakpoints (--from, --to), or two
documents at the same breakpoint, and prints a line diff of the plain text
output. Returns exit code 0 when the renderings match and 1 when they differ.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "sm", "Breakpoint of the left side")
	cmd.Flags().StringVar(&opts.To, "to", "lg", "Breakpoint of the right side")

	return cmd
}

type diffSide struct {
	path  string
	bp    responsive.Breakpoint
	label string
}

func runDiff(cmd *cobra.Command, root *rootFlags, opts diffOptions, args []string) error {
	app, err := newAppContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()
	ctx := app.commandContext(cmd, "diff")

	var left, right diffSide
	if len(args) == 2 {
		bp := responsive.MD
		if app.breakpoint != nil {
			bp = *app.breakpoint
		}
		left = diffSide{path: args[0], bp: bp, label: args[0]}
		right = diffSide{path: args[1], bp: bp, label: args[1]}
	} else {
		from, err := responsive.Parse(opts.From)
		if err != nil {
			return withCode(exitInvalid, err)
		}
		to, err := responsive.Parse(opts.To)
		if err != nil {
			return withCode(exitInvalid, err)
		}
		left = diffSide{path: args[0], bp: from, label: args[0] + "@" + from.String()}
		right = diffSide{path: args[0], bp: to, label: args[0] + "@" + to.String()}
	}

	before, err := renderPlain(ctx, app, left)
	if err != nil {
		return err
	}
	after, err := renderPlain(ctx, app, right)
	if err != nil {
		return err
	}

	out, stats := diff.Unified(before, after, left.label, right.label)
	if !stats.Changed() {
		fmt.Fprintln(cmd.OutOrStdout(), "renderings are identical")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return withCode(exitFailure, fmt.Errorf("renderings differ: %d added, %d removed", stats.Added, stats.Removed))
}

// renderPlain draws one side without styling so the diff compares text only.
func renderPlain(ctx context.Context, app *appContext, side diffSide) (string, error) {
	doc, err := app.loadDocument(ctx, side.path)
	if err != nil {
		return "", err
	}
	width := app.width
	if width == 0 {
		width = sampleWidths[side.bp]
	}
	el, _ := app.newSession(doc, side.bp, nil).RenderDocument(ctx, doc)
	return ansi.Strip(tui.NewRenderer(app.theme, width).Render(el)), nil
}
