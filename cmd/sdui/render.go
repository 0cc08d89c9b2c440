package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/tui"
)

type renderOptions struct {
	JSON   bool
	Strict bool
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document once and print it",
		Long: `Render resolves a JSON or YAML document at the current breakpoint and
prints the result. Nodes that fail to resolve are drawn as placeholders and
reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the resolved element tree as JSON")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when any node fails to resolve")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, opts renderOptions, path string) error {
	app, err := newAppContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()

	ctx := app.commandContext(cmd, "render")
	doc, err := app.loadDocument(ctx, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := app.renderWidth(out)
	session := app.newSession(doc, app.renderBreakpoint(width), nil)
	el, renderErr := session.RenderDocument(ctx, doc)

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(el); err != nil {
			return withCode(exitInternal, fmt.Errorf("encode tree: %w", err))
		}
	} else {
		fmt.Fprintln(out, tui.NewRenderer(app.theme, width).Render(el))
	}

	problems := resolver.Errors(renderErr)
	for _, problem := range problems {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", problem)
	}
	if opts.Strict && len(problems) > 0 {
		return withCode(exitFailure, fmt.Errorf("%d %s failed to resolve", len(problems), plural(len(problems), "node", "nodes")))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
