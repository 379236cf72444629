package config

import (
	"fmt"
	"sort"

	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclConfigFile is the top-level structure of an HCL config:
//
//	nodes { node = "web-001--010" }
//	dashboard_metadata { title = "system graphs" }
//	graph "graph-1" { query = "..." }
type hclConfigFile struct {
	Nodes    *hclAttrBlock    `hcl:"nodes,block"`
	Metadata *hclAttrBlock    `hcl:"dashboard_metadata,block"`
	Graphs   []*hclGraphBlock `hcl:"graph,block"`
	Debug    *bool            `hcl:"debug,optional"`
}

// hclAttrBlock is a block made only of free-form attributes.
type hclAttrBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type hclGraphBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// decodeHCL parses an HCL config. Graph templates are `graph` blocks
// instead of a dashboard_graphs mapping.
func decodeHCL(data []byte, filename string, log logger.Logger) (*rawDoc, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	raw := &rawDoc{}
	if parsed.Debug != nil {
		raw.debug = *parsed.Debug
	}

	if parsed.Nodes != nil {
		attrs, err := orderedAttributes(parsed.Nodes.Body)
		if err != nil {
			return nil, err
		}
		for _, a := range attrs {
			tokens, err := nodeTokens(a.name, a.value)
			if err != nil {
				return nil, err
			}
			raw.nodes = append(raw.nodes, NodeSource{Name: a.name, Tokens: tokens})
		}
	}

	if parsed.Metadata != nil {
		attrs, err := orderedAttributes(parsed.Metadata.Body)
		if err != nil {
			return nil, err
		}
		raw.metadata = make(map[string]any, len(attrs))
		for _, a := range attrs {
			raw.metadata[a.name] = a.value
		}
	}

	if len(parsed.Graphs) > 0 {
		raw.hasGraph = true
	}
	for _, g := range parsed.Graphs {
		attrs, err := orderedAttributes(g.Body)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': %w", g.Name, err)
		}
		fields := make(map[string]any, len(attrs))
		for _, a := range attrs {
			fields[a.name] = a.value
		}
		raw.graphs = append(raw.graphs, rawGraph{name: g.Name, fields: fields})
	}

	log.Debug("decoded HCL config %s: %d node groups, %d graphs", filename, len(raw.nodes), len(raw.graphs))
	return raw, nil
}

type hclAttr struct {
	name  string
	value any
}

// orderedAttributes evaluates every attribute of body as a constant and
// returns them in source order.
func orderedAttributes(body hcl.Body) ([]hclAttr, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	list := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Range.Start.Byte < list[j].Range.Start.Byte
	})

	out := make([]hclAttr, 0, len(list))
	for _, a := range list {
		v, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(v)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %w", a.Name, err)
		}
		out = append(out, hclAttr{name: a.Name, value: native})
	}
	return out, nil
}

// ctyToNative converts a cty.Value to the same plain Go shapes the YAML
// decoder produces.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
