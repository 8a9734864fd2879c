package output

import (
	"bytes"
	"fmt"

	"github.com/mj1618/macro-cli/internal/model"
	"gopkg.in/yaml.v3"
)

// PrintYAML serializes v as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// DocumentYAML renders a document as block-style YAML with the same key
// order as the JSON exchange format.
func DocumentYAML(doc *model.Document) ([]byte, error) {
	data, err := model.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yaml convert: %w", err)
	}
	blockStyle(&node)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles the JSON source implies.
// Strings that would read back as another type stay quoted.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Style = 0
		var probe interface{}
		if err := yaml.Unmarshal([]byte(n.Value), &probe); err != nil || probe == nil {
			n.Style = yaml.DoubleQuotedStyle
		} else if _, ok := probe.(string); !ok {
			n.Style = yaml.DoubleQuotedStyle
		}
	} else {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
