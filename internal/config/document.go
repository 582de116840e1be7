package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitestamp/internal/foundation/errors"
)

// Document is a parsed configuration tree made of map[string]any, []any and scalars.
type Document struct {
	path string
	root any
}

// NewDocument wraps an already decoded tree.
func NewDocument(root any) *Document {
	return &Document{root: root}
}

// Root returns the underlying tree.
func (d *Document) Root() any {
	return d.root
}

// Path returns the file the document was loaded from (empty for in-memory documents).
func (d *Document) Path() string {
	return d.path
}

// Load reads and parses the configuration file at path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
// A missing or unparsable file yields a fatal config error.
func Load(path string) (*Document, error) {
	if path == "" {
		return nil, errors.ConfigError("configuration file path is required").Build()
	}

	// #nosec G304 -- the configuration path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "failed to read configuration file"
		if os.IsNotExist(err) {
			msg = "configuration file not found"
		}
		return nil, errors.ConfigError(msg).
			WithContext("path", path).
			WithCause(err).
			Build()
	}

	var root any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		root, err = parseYAML(data)
		if err != nil {
			return nil, errors.ConfigError("configuration is not valid YAML").
				WithContext("path", path).
				WithCause(err).
				Build()
		}
	default:
		root, err = oj.Parse(data)
		if err != nil {
			return nil, errors.ConfigError("configuration is not valid JSON").
				WithContext("path", path).
				WithCause(err).
				Build()
		}
	}

	return &Document{path: path, root: root}, nil
}

// parseYAML decodes a YAML document into the same tree shape the JSON parser produces.
// Scalars keep their literal text unless they are plain ints, floats, bools or nulls,
// so dates such as 2019-04-01 stay strings instead of becoming time values.
func parseYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return convertYAML(&node)
}

func convertYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertYAML(n.Content[0])
	case yaml.AliasNode:
		return convertYAML(n.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := convertYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[n.Content[i].Value] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convertYAML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return convertScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func convertScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err == nil {
			return v, nil
		}
		return n.Value, nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case "!!null":
		return nil, nil
	default:
		return n.Value, nil
	}
}
