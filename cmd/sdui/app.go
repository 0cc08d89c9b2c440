package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/config"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/registry"
	"github.com/alexisbeaulieu97/sdui/internal/resolver"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/spec"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	"github.com/alexisbeaulieu97/sdui/internal/widgets"
)

// appContext bundles the services one command invocation needs.
type appContext struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *registry.Registry
	theme    components.Theme
	// breakpoint is nil unless pinned by flag or settings.
	breakpoint *responsive.Breakpoint
	// width is zero unless fixed by flag or settings.
	width int

	closeLog func() error
}

// newAppContext loads the settings, applies flag overrides and builds the
// frozen component registry. Logs go to logTo; nil means the settings'
// log file, or nowhere.
func newAppContext(flags *rootFlags, logTo io.Writer) (*appContext, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, withCode(exitInvalid, err)
	}

	a := &appContext{cfg: cfg, width: cfg.Render.Width, closeLog: func() error { return nil }}

	themeName := cfg.Render.Theme
	if flags.theme != "" {
		themeName = flags.theme
	}
	a.theme, err = components.ThemeByName(themeName)
	if err != nil {
		return nil, withCode(exitInvalid, err)
	}

	if flags.breakpoint != "" {
		bp, err := responsive.Parse(flags.breakpoint)
		if err != nil {
			return nil, withCode(exitInvalid, err)
		}
		a.breakpoint = &bp
	} else if bp, pinned := cfg.Breakpoint(); pinned {
		a.breakpoint = &bp
	}

	if flags.width < 0 {
		return nil, withCode(exitInvalid, fmt.Errorf("--width must be positive, got %d", flags.width))
	}
	if flags.width > 0 {
		a.width = flags.width
	}

	if logTo == nil {
		logTo = io.Discard
		if cfg.Log.File != "" {
			f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, withCode(exitInternal, fmt.Errorf("open log file: %w", err))
			}
			logTo = f
			a.closeLog = f.Close
		}
	}
	opts := cfg.LoggerOptions(flags.verbose)
	opts.Writer = logTo
	a.log, err = logger.New(opts)
	if err != nil {
		_ = a.closeLog()
		return nil, withCode(exitInternal, fmt.Errorf("create logger: %w", err))
	}

	a.registry = registry.New(a.log)
	if err := widgets.RegisterDefaults(a.registry); err != nil {
		_ = a.closeLog()
		return nil, withCode(exitInternal, err)
	}
	a.registry.Freeze()

	return a, nil
}

// commandContext tags the command's context with a fresh correlation id.
func (a *appContext) commandContext(cmd *cobra.Command, name string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())
	a.log.Debug(ctx, "command started", "command", name)
	return ctx
}

// loadDocument reads and parses the document at path.
func (a *appContext) loadDocument(ctx context.Context, path string) (*spec.Document, error) {
	doc, err := spec.Load(path)
	if err != nil {
		a.log.Error(ctx, err, "document rejected", "path", path)
		return nil, withCode(exitInvalid, err)
	}
	return doc, nil
}

// newSession creates a resolver session for doc at bp.
func (a *appContext) newSession(doc *spec.Document, bp responsive.Breakpoint, d *action.Dispatcher) *resolver.Session {
	opts := []resolver.Option{
		resolver.WithLogger(a.log),
		resolver.WithDocument(doc),
		resolver.WithBreakpoint(bp),
	}
	if d != nil {
		opts = append(opts, resolver.WithDispatcher(d))
	}
	return resolver.NewSession(a.registry, opts...)
}

// renderWidth is the fixed width, or the width of out when it is a
// terminal.
func (a *appContext) renderWidth(out io.Writer) int {
	if a.width > 0 {
		return a.width
	}
	return terminalWidth(out)
}

// renderBreakpoint is the pinned breakpoint, or the one the width selects.
func (a *appContext) renderBreakpoint(width int) responsive.Breakpoint {
	if a.breakpoint != nil {
		return *a.breakpoint
	}
	return responsive.FromWidth(width)
}

func (a *appContext) close() {
	_ = a.closeLog()
}
