package adapter

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "modedit.dev/pkg/modedit/internal/model"
)

// EditScriptAdapter reads edit scripts and inline values written in YAML
// (JSON being a subset, JSON input works as well).
type EditScriptAdapter interface {
	// LoadScript reads an edit script file.
	LoadScript(ctx context.Context, path m.Path) (m.EditScript, error)
	// ParseScript decodes an edit script document.
	ParseScript(data []byte) (m.EditScript, error)
	// ParseValue decodes a single value, keeping mapping key order.
	ParseValue(text string) (m.Value, error)
}

// YAMLEditScriptAdapter implements EditScriptAdapter with gopkg.in/yaml.v3.
type YAMLEditScriptAdapter struct{}

// NewYAMLEditScriptAdapter constructs a YAMLEditScriptAdapter.
func NewYAMLEditScriptAdapter() *YAMLEditScriptAdapter {
	return &YAMLEditScriptAdapter{}
}

// LoadScript reads and decodes the script at path.
func (a *YAMLEditScriptAdapter) LoadScript(ctx context.Context, path m.Path) (m.EditScript, error) {
	if err := ctx.Err(); err != nil {
		return m.EditScript{}, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.EditScript{}, fmt.Errorf("failed to read edit script: %w", err)
	}

	return a.ParseScript(data)
}

// ParseScript decodes a YAML sequence of {op, path, value} mappings.
func (a *YAMLEditScriptAdapter) ParseScript(data []byte) (m.EditScript, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return m.EditScript{}, fmt.Errorf("failed to decode edit script: %w", err)
	}

	root := unwrapDocument(&doc)
	if root == nil {
		return m.EditScript{}, nil
	}

	if root.Kind != yaml.SequenceNode {
		return m.EditScript{}, fmt.Errorf("edit script must be a list of edits, line %d", root.Line)
	}

	script := m.EditScript{Edits: make([]m.Edit, 0, len(root.Content))}

	for _, item := range root.Content {
		edit, err := decodeEdit(item)
		if err != nil {
			return m.EditScript{}, err
		}

		script.Edits = append(script.Edits, edit)
	}

	return script, nil
}

// ParseValue decodes text as a YAML value.
func (a *YAMLEditScriptAdapter) ParseValue(text string) (m.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}

	root := unwrapDocument(&doc)
	if root == nil {
		return m.Null{}, nil
	}

	return valueFromYAML(root)
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	if n.Kind == 0 {
		return nil
	}

	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}

		return n.Content[0]
	}

	return n
}

func decodeEdit(item *yaml.Node) (m.Edit, error) {
	if item.Kind != yaml.MappingNode {
		return m.Edit{}, fmt.Errorf("edit at line %d must be a mapping", item.Line)
	}

	var edit m.Edit

	for i := 0; i+1 < len(item.Content); i += 2 {
		key, val := item.Content[i], item.Content[i+1]

		switch key.Value {
		case "op":
			edit.Op = m.EditOp(val.Value)
		case "path":
			edit.Path = val.Value
		case "value":
			v, err := valueFromYAML(val)
			if err != nil {
				return m.Edit{}, err
			}

			edit.Value = v
		default:
			return m.Edit{}, fmt.Errorf("unknown edit field %q at line %d", key.Value, key.Line)
		}
	}

	switch edit.Op {
	case m.OpSet, m.OpAppend, m.OpMerge:
		if edit.Value == nil {
			return m.Edit{}, fmt.Errorf("%s edit at line %d needs a value", edit.Op, item.Line)
		}
	case m.OpDelete:
	default:
		return m.Edit{}, fmt.Errorf("unknown edit op %q at line %d", edit.Op, item.Line)
	}

	return edit, nil
}

// valueFromYAML converts a YAML node, keeping mapping key order.
func valueFromYAML(n *yaml.Node) (m.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return m.Null{}, nil
		}

		return valueFromYAML(n.Content[0])
	case yaml.AliasNode:
		return valueFromYAML(n.Alias)
	case yaml.MappingNode:
		mapping := m.NewMapping()

		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}

			mapping.Set(n.Content[i].Value, v)
		}

		return mapping, nil
	case yaml.SequenceNode:
		seq := m.NewSequence()

		for _, item := range n.Content {
			v, err := valueFromYAML(item)
			if err != nil {
				return nil, err
			}

			seq.Append(v)
		}

		return seq, nil
	case yaml.ScalarNode:
		if n.Tag == "!!timestamp" || n.Tag == "!!binary" {
			return m.String(n.Value), nil
		}

		var x any
		if err := n.Decode(&x); err != nil {
			return nil, fmt.Errorf("failed to decode value at line %d: %w", n.Line, err)
		}

		return m.FromNative(x)
	}

	return nil, fmt.Errorf("unsupported YAML node at line %d", n.Line)
}
