package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("page.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "page.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "page.yaml:12")
}

func TestSchemaErrorNamesNodePath(t *testing.T) {
	t.Parallel()

	err := NewSchemaError("$.children[1]", "Table", "body", "is required", nil)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "$.children[1]", schemaErr.Path)
	require.Equal(t, "schema error at $.children[1] (Table): body: is required", err.Error())
}

func TestSchemaErrorWithPathKeepsExistingPath(t *testing.T) {
	t.Parallel()

	rooted := (&SchemaError{Message: "bad"}).WithPath("$.children[0]", "DataTable")
	require.Equal(t, "$.children[0]", rooted.Path)
	require.Equal(t, "DataTable", rooted.NodeType)

	kept := (&SchemaError{Path: "$.x", Message: "bad"}).WithPath("$.y", "Box")
	require.Equal(t, "$.x", kept.Path)
}

func TestUnknownTypeErrorIncludesType(t *testing.T) {
	t.Parallel()

	err := NewUnknownTypeError("$.children[3]", "Frobnicator")
	require.Contains(t, err.Error(), `"Frobnicator"`)
	require.Contains(t, err.Error(), "$.children[3]")
}

func TestActionErrorIncludesActionName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("no handler registered")
	err := NewActionError("editUser", "$.children[0]", underlying)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	require.Equal(t, "editUser", actionErr.Action)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestRegistryErrorIncludesType(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("already registered")
	err := NewRegistryError("Badge", underlying)

	var registryErr *RegistryError
	require.ErrorAs(t, err, &registryErr)
	require.Equal(t, "Badge", registryErr.Type)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestConfigErrorFormatsField(t *testing.T) {
	t.Parallel()

	err := NewConfigError("log_level", "unknown level", nil)
	require.Equal(t, "config error: log_level: unknown level", err.Error())
}
