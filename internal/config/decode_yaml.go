package config

import (
	"fmt"

	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/util"
	"gopkg.in/yaml.v3"
)

// decodeYAML parses YAML (and JSON, which is a YAML subset) through the
// node API so mapping order survives.
func decodeYAML(data []byte, log logger.Logger) (*rawDoc, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	raw := &rawDoc{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return raw, nil
	}
	if root.Kind != yaml.DocumentNode {
		return nil, fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at document root")
	}

	for i := 0; i+1 < len(docNode.Content); i += 2 {
		key, value := docNode.Content[i].Value, docNode.Content[i+1]
		switch key {
		case keyNodes:
			nodes, err := yamlNodes(value)
			if err != nil {
				return nil, err
			}
			raw.nodes = nodes
		case keyMetadata:
			if isNull(value) {
				continue
			}
			if err := value.Decode(&raw.metadata); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", value.Line, keyMetadata, err)
			}
		case keyGraphs:
			raw.hasGraph = true
			graphs, err := yamlGraphs(value)
			if err != nil {
				return nil, err
			}
			raw.graphs = graphs
		case keyDebug:
			if err := value.Decode(&raw.debug); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", value.Line, keyDebug, err)
			}
		default:
			log.Warn("ignoring unknown top-level key %q (line %d)%s", key, docNode.Content[i].Line, util.DidYouMean(key, topLevelKeys))
		}
	}

	return raw, nil
}

func yamlNodes(n *yaml.Node) ([]NodeSource, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: '%s' must be a mapping of group name to range", n.Line, keyNodes)
	}

	nodes := make([]NodeSource, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: node group '%s': %w", n.Content[i+1].Line, name, err)
		}
		tokens, err := nodeTokens(name, v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Content[i+1].Line, err)
		}
		nodes = append(nodes, NodeSource{Name: name, Tokens: tokens})
	}
	return nodes, nil
}

func yamlGraphs(n *yaml.Node) ([]rawGraph, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: '%s' must be a mapping of graph name to template", n.Line, keyGraphs)
	}

	graphs := make([]rawGraph, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		value := n.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: graph '%s' must be a mapping", value.Line, name)
		}
		var fields map[string]any
		if err := value.Decode(&fields); err != nil {
			return nil, fmt.Errorf("line %d: graph '%s': %w", value.Line, name, err)
		}
		graphs = append(graphs, rawGraph{name: name, fields: fields})
	}
	return graphs, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
