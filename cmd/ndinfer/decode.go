// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ndarray/source"
)

// tupleTag marks a YAML sequence as a record tuple.
const tupleTag = "!tuple"

// errEmptyDocument is returned for input without a YAML document.
var errEmptyDocument = errors.New("ndinfer: empty document")

// decodeDocument parses data as YAML (JSON included) into host values:
// sequences become []any (source.Tuple when tagged !tuple), scalars their
// natural Go type, mappings map[string]any.
func decodeDocument(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ndinfer: parse document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errEmptyDocument
	}
	return decodeNode(doc.Content[0])
}

func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		return decodeNode(n.Content[0])

	case yaml.AliasNode:
		return decodeNode(n.Alias)

	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		if n.Tag == tupleTag {
			return source.Tuple(out), nil
		}
		return out, nil

	case yaml.ScalarNode, yaml.MappingNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("ndinfer: line %d: %w", n.Line, err)
		}
		return v, nil
	}

	return nil, fmt.Errorf("ndinfer: line %d: unsupported node kind %d", n.Line, n.Kind)
}
