package errors

import (
	"fmt"
)

// ParseError represents a document decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SchemaError reports a document that is structurally wrong: a missing
// required field, a duplicate column id, an invalid enum value. Path is the
// node path inside the tree (for example `$.children[2]`), Field the offending
// prop relative to that node.
type SchemaError struct {
	Path     string
	NodeType string
	Field    string
	Message  string
	Err      error
}

// NewSchemaError constructs a SchemaError for the node at path.
func NewSchemaError(path, nodeType, field, message string, err error) error {
	return &SchemaError{Path: path, NodeType: nodeType, Field: field, Message: message, Err: err}
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	location := e.Path
	if e.NodeType != "" {
		location = fmt.Sprintf("%s (%s)", e.Path, e.NodeType)
	}
	if e.Field != "" {
		return fmt.Sprintf("schema error at %s: %s: %s", location, e.Field, e.Message)
	}
	return fmt.Sprintf("schema error at %s: %s", location, e.Message)
}

// Unwrap exposes the underlying error.
func (e *SchemaError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithPath returns a copy of the error re-rooted at path when it has none.
func (e *SchemaError) WithPath(path, nodeType string) *SchemaError {
	if e == nil {
		return nil
	}
	cp := *e
	if cp.Path == "" {
		cp.Path = path
	}
	if cp.NodeType == "" {
		cp.NodeType = nodeType
	}
	return &cp
}

// UnknownTypeError indicates a node whose type has no registered strategy.
type UnknownTypeError struct {
	Path string
	Type string
}

// NewUnknownTypeError constructs an UnknownTypeError.
func NewUnknownTypeError(path, nodeType string) error {
	return &UnknownTypeError{Path: path, Type: nodeType}
}

func (e *UnknownTypeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("unknown component type %q at %s", e.Type, e.Path)
	}
	return fmt.Sprintf("unknown component type %q", e.Type)
}

// ActionError records a dispatch that could not be completed: no handler
// registered under the name, or the handler itself failed.
type ActionError struct {
	Action string
	Source string
	Err    error
}

// NewActionError constructs an ActionError.
func NewActionError(action, source string, err error) error {
	return &ActionError{Action: action, Source: source, Err: err}
}

func (e *ActionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("action error [%s] from %s: %v", e.Action, e.Source, e.Err)
	}
	return fmt.Sprintf("action error [%s]: %v", e.Action, e.Err)
}

// Unwrap exposes the root error.
func (e *ActionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RegistryError indicates issues with component registration.
type RegistryError struct {
	Type    string
	Message string
	Err     error
}

// NewRegistryError constructs a RegistryError for the given component type.
func NewRegistryError(componentType string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &RegistryError{Type: componentType, Message: message, Err: err}
}

func (e *RegistryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Type != "" {
		return fmt.Sprintf("registry error [%s]: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("registry error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *RegistryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigError captures application configuration issues.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(field, message string, err error) error {
	return &ConfigError{Field: field, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
