package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Document is the envelope around a root node.
type Document struct {
	Version     string       `yaml:"version,omitempty" json:"version,omitempty"`
	Metadata    Metadata     `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Root        *Node        `yaml:"root" json:"root"`
	DataSources []DataSource `yaml:"dataSources,omitempty" json:"dataSources,omitempty" validate:"omitempty,unique=ID,dive"`
}

// Metadata describes the document itself, not the UI.
type Metadata struct {
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// DataSource supplies materialised rows to components that reference it by
// id. Only static sources exist; fetching is the embedding application's job.
type DataSource struct {
	ID     string           `yaml:"id" json:"id" validate:"required"`
	Type   string           `yaml:"type" json:"type" validate:"required,oneof=static"`
	Config DataSourceConfig `yaml:"config" json:"config"`
}

// DataSourceConfig holds the static payload.
type DataSourceConfig struct {
	Data any `yaml:"data" json:"data"`
}

// Source returns the data of the source with the given id.
func (d *Document) Source(id string) (any, bool) {
	if d == nil {
		return nil, false
	}
	for _, src := range d.DataSources {
		if src.ID == id {
			return normalize(src.Config.Data), true
		}
	}
	return nil, false
}

// Load reads and parses a UI document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sduierrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes a JSON or YAML document. The input may be a full envelope
// with a `root` or a bare node with a `type`.
func Parse(name string, data []byte) (*Document, error) {
	raw, err := decodeRaw(name, data)
	if err != nil {
		return nil, err
	}

	top, ok := asStringMap(raw)
	if !ok {
		return nil, sduierrors.NewParseError(name, 0, fmt.Errorf("document must be an object, got %T", raw))
	}

	doc := &Document{}
	if rootValue, hasRoot := top["root"]; hasRoot {
		envelope := make(map[string]any, len(top))
		for k, v := range top {
			if k != "root" {
				envelope[k] = v
			}
		}
		if err := Decode(envelope, doc); err != nil {
			return nil, sduierrors.NewParseError(name, 0, err)
		}
		root, err := FromValue(rootValue)
		if err != nil {
			return nil, sduierrors.NewParseError(name, 0, fmt.Errorf("root: %w", err))
		}
		doc.Root = root
	} else {
		doc.Root = nodeFromMap(top)
	}

	if err := validatorInstance().Struct(doc); err != nil {
		return nil, convertValidationError(&Node{Type: "Document"}, "", err)
	}
	return doc, nil
}

func decodeRaw(name string, data []byte) (any, error) {
	var raw any
	if isJSON(name, data) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, sduierrors.NewParseError(name, 0, err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, sduierrors.NewParseError(name, 0, errors.New("unexpected data after top-level value"))
		}
		return normalize(raw), nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, sduierrors.NewParseError(name, extractLine(err), err)
	}
	return normalize(raw), nil
}

// isJSON picks the decoder. The extension wins; only names without a known
// one are sniffed, since a YAML flow mapping also starts with '{'.
func isJSON(name string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
