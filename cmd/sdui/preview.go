package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/tui"
)

type previewOptions struct {
	Handlers map[string]string
}

var errNoTerminal = errors.New("preview needs an interactive terminal; use render for static output")

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Open a document in the interactive preview",
		Long: `Preview renders the document full screen and routes keyboard input to its
interactive components. Actions fired by components are shown in the status
line; bind action names to behaviours with --handler or the handlers section
of the settings file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(cmd.OutOrStdout()) {
				return withCode(exitFailure, errNoTerminal)
			}
			return runPreview(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringToStringVar(&opts.Handlers, "handler", nil, "Bind an action to a behaviour: name=log|echo|quit (repeatable)")

	return cmd
}

func runPreview(cmd *cobra.Command, root *rootFlags, opts previewOptions, path string) error {
	app, err := newAppContext(root, nil)
	if err != nil {
		return err
	}
	defer app.close()

	ctx := app.commandContext(cmd, "preview")
	doc, err := app.loadDocument(ctx, path)
	if err != nil {
		return err
	}

	activity := tui.NewActivity(50)
	dispatcher := action.NewDispatcher(action.WithLogger(app.log))
	if err := tui.BindHandlers(dispatcher, mergeBindings(app.cfg.Handlers, opts.Handlers), app.log, activity); err != nil {
		return withCode(exitInvalid, err)
	}
	sub := dispatcher.Subscribe(activity.Record)
	defer sub.Unsubscribe()

	model := tui.New(tui.Options{
		Document:   doc,
		Session:    app.newSession(doc, app.renderBreakpoint(app.renderWidth(cmd.OutOrStdout())), dispatcher),
		Theme:      app.theme,
		Logger:     app.log,
		Activity:   activity,
		Breakpoint: app.breakpoint,
		Width:      app.width,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		app.log.Error(ctx, err, "preview failed", "path", path)
		return withCode(exitInternal, fmt.Errorf("run preview: %w", err))
	}
	return nil
}

// mergeBindings overlays flag bindings on the settings file ones.
func mergeBindings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for name, behaviour := range base {
		out[name] = behaviour
	}
	for name, behaviour := range overrides {
		out[name] = behaviour
	}
	return out
}
