package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

type validateOptions struct {
	JSON bool
}

// problem is one distinct resolution failure and the breakpoints it shows
// up at.
type problem struct {
	Path        string   `json:"path"`
	Type        string   `json:"type,omitempty"`
	Field       string   `json:"field,omitempty"`
	Message     string   `json:"message"`
	Breakpoints []string `json:"breakpoints"`
}

func newValidateCmd(root *rootFlags) *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document at every breakpoint",
		Long: `Validate resolves the document once per breakpoint and reports every node
that fails. Returns exit code 0 when the document is clean, 1 when problems
were found and 2 when the document cannot be parsed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output problems in JSON format")

	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, opts validateOptions, path string) error {
	app, err := newAppContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.close()

	ctx := app.commandContext(cmd, "validate")
	doc, err := app.loadDocument(ctx, path)
	if err != nil {
		return err
	}

	problems := collectProblems(ctx, app, doc)
	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"file": path, "problems": problems}); err != nil {
			return withCode(exitInternal, err)
		}
	} else {
		printProblems(out, path, problems)
	}

	if len(problems) > 0 {
		return withCode(exitFailure, fmt.Errorf("%d %s found", len(problems), plural(len(problems), "problem", "problems")))
	}
	return nil
}

// collectProblems renders doc at every breakpoint with a fresh session and
// merges identical failures.
func collectProblems(ctx context.Context, app *appContext, doc *spec.Document) []*problem {
	var ordered []*problem
	seen := make(map[string]*problem)
	for _, bp := range responsive.All() {
		_, err := app.newSession(doc, bp, nil).RenderDocument(ctx, doc)
		for _, e := range resolver.Errors(err) {
			p, ok := seen[e.Error()]
			if !ok {
				p = describe(e)
				seen[e.Error()] = p
				ordered = append(ordered, p)
			}
			p.Breakpoints = append(p.Breakpoints, bp.String())
		}
	}
	return ordered
}

func describe(err error) *problem {
	var schemaErr *sduierrors.SchemaError
	if errors.As(err, &schemaErr) {
		return &problem{Path: schemaErr.Path, Type: schemaErr.NodeType, Field: schemaErr.Field, Message: schemaErr.Message}
	}
	var unknown *sduierrors.UnknownTypeError
	if errors.As(err, &unknown) {
		return &problem{Path: unknown.Path, Type: unknown.Type, Message: "unknown component type"}
	}
	return &problem{Path: "$", Message: err.Error()}
}

func printProblems(out io.Writer, path string, problems []*problem) {
	if len(problems) == 0 {
		fmt.Fprintf(out, "%s: no problems at any breakpoint\n", path)
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Path", "Type", "Field", "Breakpoints", "Message"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, p := range problems {
		table.Append([]string{p.Path, p.Type, p.Field, breakpointSummary(p.Breakpoints), p.Message})
	}
	table.Render()
	fmt.Fprintf(out, "\n%s: %d %s\n", path, len(problems), plural(len(problems), "problem", "problems"))
}

func breakpointSummary(bps []string) string {
	if len(bps) == len(responsive.All()) {
		return "all"
	}
	return strings.Join(bps, ", ")
}
