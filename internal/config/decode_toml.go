package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/util"
)

// decodeTOML parses a TOML config. Tables decode into Go maps, so node
// group order is recovered from the metadata key list, which follows the
// document.
func decodeTOML(data []byte, log logger.Logger) (*rawDoc, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}

	raw := &rawDoc{}
	for key, value := range doc {
		switch key {
		case keyNodes, keyGraphs:
			// handled below, in document order
		case keyMetadata:
			m, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("'%s' must be a table", keyMetadata)
			}
			raw.metadata = m
		case keyDebug:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("'%s' must be a boolean", keyDebug)
			}
			raw.debug = b
		default:
			log.Warn("ignoring unknown top-level key %q%s", key, util.DidYouMean(key, topLevelKeys))
		}
	}

	if v, ok := doc[keyNodes]; ok {
		groups, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("'%s' must be a table of group name to range", keyNodes)
		}
		for _, name := range orderedChildren(md, keyNodes) {
			tokens, err := nodeTokens(name, groups[name])
			if err != nil {
				return nil, err
			}
			raw.nodes = append(raw.nodes, NodeSource{Name: name, Tokens: tokens})
		}
	}

	if v, ok := doc[keyGraphs]; ok {
		raw.hasGraph = true
		graphs, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("'%s' must be a table of graph name to template", keyGraphs)
		}
		for _, name := range orderedChildren(md, keyGraphs) {
			fields, ok := graphs[name].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("graph '%s' must be a table", name)
			}
			raw.graphs = append(raw.graphs, rawGraph{name: name, fields: fields})
		}
	}

	return raw, nil
}

// orderedChildren returns the direct child keys of table in the order they
// appear in the document.
func orderedChildren(md toml.MetaData, table string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, k := range md.Keys() {
		if len(k) < 2 || k[0] != table {
			continue
		}
		if name := k[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
