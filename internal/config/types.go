// Package config loads the user settings of the sdui command line: logging,
// rendering defaults and the behaviours bound to action names in preview.
package config

import (
	"github.com/alexisbeaulieu97/sdui/internal/logger"
	"github.com/alexisbeaulieu97/sdui/internal/responsive"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config represents the full settings document.
type Config struct {
	Log    LogSettings    `yaml:"log,omitempty"`
	Render RenderSettings `yaml:"render,omitempty"`
	// Handlers maps action names onto preview behaviours.
	Handlers map[string]string `yaml:"handlers,omitempty" validate:"omitempty,dive,keys,required,endkeys,oneof=log echo quit"`
}

// LogSettings controls the logger.
type LogSettings struct {
	Level  string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=console json"`
	// File receives log output while the preview owns the terminal. Empty
	// discards it.
	File string `yaml:"file,omitempty"`
}

// RenderSettings are the defaults applied to render and preview.
type RenderSettings struct {
	Theme string `yaml:"theme,omitempty" validate:"omitempty,theme"`
	// Breakpoint pins the breakpoint; empty derives it from the width.
	Breakpoint string `yaml:"breakpoint,omitempty" validate:"omitempty,breakpoint"`
	// Width fixes the render width; zero uses the terminal width.
	Width int `yaml:"width,omitempty" validate:"omitempty,min=10,max=1000"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Log: LogSettings{
			Level:  "warn",
			Format: FormatConsole,
		},
		Render: RenderSettings{
			Theme: "default",
		},
		Handlers: map[string]string{},
	}
}

// LoggerOptions maps the log settings onto logger options. Verbose raises
// the level to debug.
func (c Config) LoggerOptions(verbose bool) logger.Options {
	level := c.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.Options{
		Level:         level,
		HumanReadable: c.Log.Format != FormatJSON,
		Component:     "sdui",
	}
}

// Breakpoint returns the pinned breakpoint, if any.
func (c Config) Breakpoint() (responsive.Breakpoint, bool) {
	if c.Render.Breakpoint == "" {
		return responsive.Base, false
	}
	bp, err := responsive.Parse(c.Render.Breakpoint)
	if err != nil {
		return responsive.Base, false
	}
	return bp, true
}
