package spec

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

func TestParseBareNodeJSON(t *testing.T) {
	t.Parallel()

	doc, err := Parse("page.json", []byte(`{
		"type": "Stack",
		"spacing": "4",
		"props": {"direction": "column", "spacing": "2"},
		"children": [
			{"type": "Text", "children": "hello"},
			"plain text",
			[{"type": "Badge", "children": "nested"}]
		]
	}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	root := doc.Root
	require.Equal(t, "Stack", root.Type)
	require.Equal(t, "4", root.String("spacing"), "inline props win over explicit props")
	require.Equal(t, "column", root.String("direction"))
	require.Len(t, root.Children, 3)
	require.Equal(t, "Text", root.Children[0].Node.Type)
	require.True(t, root.Children[1].IsText())
	require.Equal(t, "plain text", root.Children[1].Text)
	require.Equal(t, "Badge", root.Children[2].Node.Type)
}

func TestParseChildrenNestedInProps(t *testing.T) {
	t.Parallel()

	doc, err := Parse("page.json", []byte(`{
		"type": "Heading",
		"props": {"level": 2, "children": "Our Services"}
	}`))
	require.NoError(t, err)
	require.False(t, doc.Root.Has("children"))
	require.Len(t, doc.Root.Children, 1)
	require.Equal(t, "Our Services", doc.Root.Children[0].Text)
}

func TestParseEnvelopeYAML(t *testing.T) {
	t.Parallel()

	doc, err := Parse("page.yaml", []byte(`version: "1.0"
metadata:
  title: Payments
dataSources:
  - id: payments
    type: static
    config:
      data:
        - id: 1
          amount: 316
root:
  type: DataTable
  data: payments
  columns:
    - id: amount
      accessorKey: amount
`))
	require.NoError(t, err)
	require.Equal(t, "1.0", doc.Version)
	require.Equal(t, "Payments", doc.Metadata.Title)
	require.Equal(t, "DataTable", doc.Root.Type)

	data, ok := doc.Source("payments")
	require.True(t, ok)
	rows, ok := data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	require.Equal(t, float64(316), row["amount"], "yaml ints normalise to float64")
}

func TestParseRejectsUnknownDataSourceType(t *testing.T) {
	t.Parallel()

	_, err := Parse("page.yaml", []byte(`root:
  type: Box
dataSources:
  - id: users
    type: rest
`))
	require.Error(t, err)
	var schemaErr *sduierrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.Field, "type")
}

func TestParseYAMLFlowMapping(t *testing.T) {
	t.Parallel()

	doc, err := Parse("page.yaml", []byte("{type: Text, text: hi}"))
	require.NoError(t, err)
	require.Equal(t, "Text", doc.Root.Type)
	require.Equal(t, "hi", doc.Root.String("text"))

	doc, err = Parse("page.yml", []byte("{root: {type: Stack, children: [{type: Text, text: a}]}}"))
	require.NoError(t, err)
	require.Equal(t, "Stack", doc.Root.Type)
	require.Len(t, doc.Root.Children, 1)
}

func TestParseRejectsTrailingJSON(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"garbage": `{"type":"Text"} garbage`,
		"two":     `{"type":"Text"}{"type":"Badge"}`,
	} {
		_, err := Parse(name+".json", []byte(src))
		var parseErr *sduierrors.ParseError
		require.ErrorAs(t, err, &parseErr, name)
	}

	_, err := Parse("stdin", []byte("{\"type\":\"Text\"}\n\n"))
	require.NoError(t, err)
}

func TestParseReportsYAMLLine(t *testing.T) {
	t.Parallel()

	_, err := Parse("broken.yaml", []byte("type: Box\nchildren: [\n  - a\n"))
	require.Error(t, err)
	var parseErr *sduierrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "broken.yaml", parseErr.Path)
}

func TestLoadReadsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Text","children":"hi"}`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Text", doc.Root.Type)

	_, err = Load(filepath.Join(dir, "missing.json"))
	var parseErr *sduierrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestChildrenSingleNodeAndArrayNormaliseAlike(t *testing.T) {
	t.Parallel()

	single := ChildrenFromValue(map[string]any{"type": "Text", "children": "x"})
	array := ChildrenFromValue([]any{map[string]any{"type": "Text", "children": "x"}})
	require.Equal(t, single, array)
}

func TestMissingTypeStillDecodes(t *testing.T) {
	t.Parallel()

	n, err := FromValue(map[string]any{"children": "orphan"})
	require.NoError(t, err)
	require.Equal(t, "", n.Type)
	require.Len(t, n.Children, 1)

	_, err = FromValue("not a node")
	require.Error(t, err)
}

func TestNodeJSONRoundTripKeepsInlineForm(t *testing.T) {
	t.Parallel()

	n := New("Badge", map[string]any{"variant": "success"}, TextChild("ok"))
	data, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Badge","variant":"success","children":["ok"]}`, string(data))

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "Badge", decoded.Type)
	require.Equal(t, "success", decoded.String("variant"))
}

func TestNodeIDIsNotAProp(t *testing.T) {
	t.Parallel()

	var n Node
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Slider","id":"volume","max":100,"step":0.5}`), &n))
	require.Equal(t, "volume", n.ID)
	require.Equal(t, []string{"max", "step"}, n.PropKeys())
	require.Equal(t, float64(100), n.Props["max"])
	require.Equal(t, 0.5, n.Props["step"])
}

func TestLookupAccessorPaths(t *testing.T) {
	t.Parallel()

	row := map[string]any{
		"email": "ken99@yahoo.com",
		"owner": map[string]any{"name": "Ken"},
		"tags":  []any{"a", "b"},
		"none":  nil,
	}

	v, ok := Lookup(row, "owner.name")
	require.True(t, ok)
	require.Equal(t, "Ken", v)

	v, ok = Lookup(row, "tags.1")
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = Lookup(row, "owner.missing")
	require.False(t, ok)
	_, ok = Lookup(row, "tags.9")
	require.False(t, ok)
	_, ok = Lookup(row, "none")
	require.False(t, ok)
	_, ok = Lookup(row, "")
	require.False(t, ok)
}

func TestAsNodeRecognisesTypedMaps(t *testing.T) {
	t.Parallel()

	n, ok := AsNode(map[string]any{"type": "Badge", "children": "Active"})
	require.True(t, ok)
	require.Equal(t, "Badge", n.Type)

	_, ok = AsNode(map[string]any{"label": "no type"})
	require.False(t, ok)
	_, ok = AsNode("text")
	require.False(t, ok)
}

func TestNumberHelpers(t *testing.T) {
	t.Parallel()

	f, ok := Number("42.5")
	require.True(t, ok)
	require.Equal(t, 42.5, f)

	_, ok = Number("abc")
	require.False(t, ok)

	i, ok := Int(float64(3))
	require.True(t, ok)
	require.Equal(t, 3, i)

	_, ok = Int(2.5)
	require.False(t, ok)

	nums, ok := Numbers([]any{float64(25), "75"})
	require.True(t, ok)
	require.Equal(t, []float64{25, 75}, nums)
}

func TestPathBuilders(t *testing.T) {
	t.Parallel()

	p := RootPath.Child(2).Field("body").Field("rows").Index(1)
	require.Equal(t, "$.children[2].body.rows[1]", p.String())
	require.Equal(t, 5, p.Depth())
}

type sampleProps struct {
	Columns []sampleColumn `yaml:"columns" validate:"required,min=1,unique=ID,dive"`
}

type sampleColumn struct {
	ID string `yaml:"id" validate:"required"`
}

func TestDecodePropsReportsWireFieldNames(t *testing.T) {
	t.Parallel()

	n := New("DataTable", map[string]any{
		"columns": []any{map[string]any{"id": "a"}, map[string]any{"id": "a"}},
	})
	var props sampleProps
	err := DecodeProps(n, RootPath, &props)
	require.Error(t, err)

	var schemaErr *sduierrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "columns", schemaErr.Field)
	require.Equal(t, "$", schemaErr.Path)
	require.Contains(t, schemaErr.Message, "unique")

	missing := New("DataTable", map[string]any{"columns": []any{map[string]any{}}})
	err = DecodeProps(missing, RootPath.Child(0), &props)
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "columns[0].id", schemaErr.Field)
	require.Equal(t, "is required", schemaErr.Message)
}
