package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/sdui/internal/action"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
)

// Handler behaviours accepted by BindHandlers.
const (
	BehaviourLog  = "log"
	BehaviourEcho = "echo"
	BehaviourQuit = "quit"
)

// Activity collects dispatch reports for the status line. It is shared by
// pointer between the dispatcher subscription and the model.
type Activity struct {
	mu      sync.Mutex
	entries []string
	limit   int
	seq     int
	quit    bool
}

// NewActivity keeps the last limit entries.
func NewActivity(limit int) *Activity {
	return &Activity{limit: max(limit, 1)}
}

// Record is a dispatcher subscriber.
func (a *Activity) Record(_ context.Context, report action.Report) {
	line := report.Name
	switch {
	case errors.Is(report.Err, action.ErrNoHandler):
		line += " (no handler)"
	case report.Err != nil:
		line += " failed: " + report.Err.Error()
	default:
		if report.Payload.Source != "" {
			line += " from " + report.Payload.Source
		}
	}
	a.Add(line)
}

// Add appends a free-form entry.
func (a *Activity) Add(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.entries = append(a.entries, line)
	if len(a.entries) > a.limit {
		a.entries = a.entries[len(a.entries)-a.limit:]
	}
}

// Entries returns the retained entries, oldest first.
func (a *Activity) Entries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.entries...)
}

// Seq counts every entry ever added.
func (a *Activity) Seq() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

// Last returns the newest entry.
func (a *Activity) Last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1]
}

// RequestQuit asks the preview to exit after the current interaction.
func (a *Activity) RequestQuit() {
	a.mu.Lock()
	a.quit = true
	a.mu.Unlock()
}

// QuitRequested reports whether a handler asked to exit.
func (a *Activity) QuitRequested() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

// BindHandlers registers one handler per action name. Each binding maps the
// name to a behaviour: log writes the payload to log, echo shows it in the
// status line, quit ends the preview.
func BindHandlers(d *action.Dispatcher, bindings map[string]string, log *logger.Logger, activity *Activity) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		handler, err := behaviour(name, bindings[name], log, activity)
		if err != nil {
			return err
		}
		if err := d.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

func behaviour(name, kind string, log *logger.Logger, activity *Activity) (action.Handler, error) {
	switch kind {
	case BehaviourLog:
		return func(ctx context.Context, p action.Payload) error {
			log.Info(ctx, "action handled", "action", name, "source", p.Source, "event", p.Event, "value", p.Value)
			return nil
		}, nil
	case BehaviourEcho:
		return func(_ context.Context, p action.Payload) error {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			activity.Add(fmt.Sprintf("%s %s", name, data))
			return nil
		}, nil
	case BehaviourQuit:
		return func(context.Context, action.Payload) error {
			activity.RequestQuit()
			return nil
		}, nil
	}
	return nil, fmt.Errorf("handler %q: unknown behaviour %q (want %s, %s or %s)",
		name, kind, BehaviourLog, BehaviourEcho, BehaviourQuit)
}
