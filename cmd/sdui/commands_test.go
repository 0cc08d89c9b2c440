package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const cleanDoc = `
metadata:
  title: Greeting
root:
  type: Stack
  children:
    - {type: Heading, level: 2, text: Hello}
    - {type: Text, text: Welcome back}
`

const brokenDoc = `
type: Stack
children:
  - {type: Heading, level: 9, text: nope}
  - {type: Widget}
  - {type: Text, text: survivor}
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with HOME pointed at an empty directory so
// no user settings leak in.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-03"

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "sdui 1.2.3")
	require.Contains(t, stdout, "abcdef1")
	require.Contains(t, stdout, "2026-10-03")
}

func TestRenderPrintsDocument(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	stdout, stderr, err := execute(t, "render", "--theme", "plain", "--width", "40", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Hello")
	require.Contains(t, stdout, "Welcome back")
	require.Empty(t, stderr)
}

func TestRenderJSONTree(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	stdout, _, err := execute(t, "render", "--json", "--breakpoint", "md", path)
	require.NoError(t, err)

	var tree struct {
		Type     string `json:"type"`
		Path     string `json:"path"`
		Children []struct {
			Type string `json:"type"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	require.Equal(t, "Stack", tree.Type)
	require.Equal(t, "$", tree.Path)
	require.Len(t, tree.Children, 2)
	require.Equal(t, "Heading", tree.Children[0].Type)
}

func TestRenderReportsBrokenNodes(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "broken.yaml", brokenDoc)

	stdout, stderr, err := execute(t, "render", "--theme", "plain", path)
	require.NoError(t, err, "broken nodes alone do not fail a render")
	require.Contains(t, stdout, "survivor")
	require.Contains(t, stdout, "⚠")
	require.Contains(t, stderr, "warning:")
	require.Contains(t, stderr, `unknown component type "Widget"`)

	_, _, err = execute(t, "render", "--strict", "--theme", "plain", path)
	require.Error(t, err)
	require.Equal(t, exitFailure, exitCode(err))
	require.Contains(t, err.Error(), "2 nodes failed to resolve")
}

func TestRenderRejectsBadFlags(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	_, _, err := execute(t, "render", "--breakpoint", "huge", path)
	require.Error(t, err)
	require.Equal(t, exitInvalid, exitCode(err))

	_, _, err = execute(t, "render", "--theme", "neon", path)
	require.Error(t, err)
	require.Equal(t, exitInvalid, exitCode(err))
}

func TestRenderUnparsableDocument(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "bad.yaml", "type: [unclosed\n")

	_, _, err := execute(t, "render", path)
	require.Error(t, err)
	require.Equal(t, exitInvalid, exitCode(err))
	require.Contains(t, err.Error(), "parse error")
}

func TestValidateCleanDocument(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	stdout, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "no problems at any breakpoint")
}

func TestValidateReportsProblems(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "broken.yaml", brokenDoc)

	stdout, _, err := execute(t, "validate", path)
	require.Error(t, err)
	require.Equal(t, exitFailure, exitCode(err))
	require.Contains(t, err.Error(), "2 problems found")

	require.Contains(t, stdout, "BREAKPOINTS")
	require.Contains(t, stdout, "$.children[0]")
	require.Contains(t, stdout, "level")
	require.Contains(t, stdout, "$.children[1]")
	require.Contains(t, stdout, "Widget")
	require.Contains(t, stdout, "all")
}

func TestValidateJSON(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "broken.yaml", brokenDoc)

	stdout, _, err := execute(t, "validate", "--json", path)
	require.Error(t, err)

	var report struct {
		File     string    `json:"file"`
		Problems []problem `json:"problems"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, path, report.File)
	require.Len(t, report.Problems, 2)
	require.Equal(t, "$.children[0]", report.Problems[0].Path)
	require.Equal(t, "Heading", report.Problems[0].Type)
	require.Equal(t, "level", report.Problems[0].Field)
	require.Equal(t, []string{"base", "sm", "md", "lg", "xl"}, report.Problems[0].Breakpoints)
	require.Equal(t, "Widget", report.Problems[1].Type)
}

func TestTypesListsRegistry(t *testing.T) {
	stdout, _, err := execute(t, "types")
	require.NoError(t, err)
	require.Contains(t, stdout, "DataTable")
	require.Contains(t, stdout, "RadioGroupItem")
	require.Contains(t, stdout, "menubar")
	require.Contains(t, stdout, "yes")
}

func TestPreviewNeedsTerminal(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	_, _, err := execute(t, "preview", path)
	require.ErrorIs(t, err, errNoTerminal)
}

func TestSettingsFileApplies(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.yaml", cleanDoc)
	settings := writeDoc(t, dir, "settings.yaml", "render:\n  breakpoint: xl\n  theme: plain\n")

	stdout, _, err := execute(t, "render", "--json", "--config", settings, path)
	require.NoError(t, err)
	require.Contains(t, stdout, `"type": "Stack"`)

	bad := writeDoc(t, dir, "bad-settings.yaml", "handlers:\n  save: shout\n")
	_, _, err = execute(t, "render", "--config", bad, path)
	require.Error(t, err)
	require.Equal(t, exitInvalid, exitCode(err))
}

func TestMergeBindings(t *testing.T) {
	t.Parallel()

	got := mergeBindings(map[string]string{"save": "log", "exit": "quit"}, map[string]string{"save": "echo"})
	require.Equal(t, map[string]string{"save": "echo", "exit": "quit"}, got)
}

const gridDoc = `
type: SimpleGrid
cols: {base: 1, md: 2}
children:
  - {type: Text, text: alpha}
  - {type: Text, text: beta}
`

func TestDiffAcrossBreakpoints(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "grid.yaml", gridDoc)

	stdout, _, err := execute(t, "diff", "--theme", "plain", path)
	require.Error(t, err)
	require.Equal(t, exitFailure, exitCode(err))
	require.Contains(t, stdout, "--- "+path+"@sm")
	require.Contains(t, stdout, "+++ "+path+"@lg")
	require.Contains(t, stdout, "-beta")

	stdout, _, err = execute(t, "diff", "--from", "md", "--to", "xl", "--width", "90", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "renderings are identical")
}

func TestDiffTwoDocuments(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.yaml", "type: Text\ntext: hello\n")
	b := writeDoc(t, dir, "b.yaml", "type: Text\ntext: goodbye\n")

	stdout, _, err := execute(t, "diff", a, b)
	require.Error(t, err)
	require.Contains(t, stdout, "-hello")
	require.Contains(t, stdout, "+goodbye")
	require.Contains(t, err.Error(), "1 added, 1 removed")
}

func TestExampleDocumentsValidate(t *testing.T) {
	docs, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.yaml"))
	require.NoError(t, err)

	checked := 0
	for _, path := range docs {
		if filepath.Base(path) == "config.yaml" {
			continue
		}
		stdout, _, err := execute(t, "validate", path)
		require.NoError(t, err, stdout)
		checked++
	}
	require.Equal(t, 3, checked)
}

func TestExampleSettingsLoad(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "config.yaml")
	doc := writeDoc(t, t.TempDir(), "doc.yaml", cleanDoc)

	_, _, err := execute(t, "render", "--config", path, doc)
	require.NoError(t, err)
}
