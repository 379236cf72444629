// Package dashboard builds Tessera dashboard definitions.
//
// Build expands every node value against every graph template and lays the
// result out as sections, rows and cells:
//
//   - With several templates, each node value gets its own section (titled
//     with the value) and row, holding one cell per template.
//   - With a single template, a group's values share one untitled section,
//     and all cells go into one shared row. Each graph is titled with its
//     node value instead.
//
// Templates are applied in name order. That order decides query ids and
// the left-to-right placement of cells.
package dashboard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/nodes"
	"github.com/dailymotion/tessera-gen/internal/render"
)

// reservedGraphKeys can't be overridden by a template's extra keys.
var reservedGraphKeys = map[string]bool{
	"item_id": true,
	"query":   true,
}

// BuildInput is everything a build reads. None of it is modified.
type BuildInput struct {
	Nodes  nodes.Set
	Graphs map[string]config.GraphTemplate
	// Layout of every section; defaults to config.DefaultLayout.
	Layout string
	// DashboardID is used for the document hrefs. Empty when creating.
	DashboardID string
	Log         logger.Logger
}

// builder carries the per-build state: the id allocator, the query
// counter and the container slots that may be reused across values.
type builder struct {
	in       BuildInput
	log      logger.Logger
	ids      *IDAllocator
	doc      *Document
	names    []string
	multiple bool
	queryID  int

	// row is the most recently created row. In single-graph mode it is
	// reused for every value after the first.
	row *Row

	warned map[string]bool
}

// Build produces the dashboard document for in.
func Build(in BuildInput) (*Document, error) {
	if len(in.Graphs) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No graphs to build",
			"Add at least one graph template to 'dashboard_graphs'")
	}
	if in.Layout == "" {
		in.Layout = config.DefaultLayout
	}

	names := make([]string, 0, len(in.Graphs))
	for name := range in.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)

	b := &builder{
		in:       in,
		log:      logger.OrDefault(in.Log),
		ids:      NewIDAllocator(),
		doc:      newDocument(in.DashboardID),
		names:    names,
		multiple: len(names) > 1,
		warned:   make(map[string]bool),
	}

	for _, group := range in.Nodes {
		if err := b.addGroup(group); err != nil {
			return nil, err
		}
	}

	b.log.Debug("built dashboard: %d sections, %d queries", len(b.doc.Items), len(b.doc.Queries))
	return b.doc, nil
}

// addGroup lays out every value of one node group.
func (b *builder) addGroup(group nodes.Group) error {
	// shared is the group's section in single-graph mode.
	var shared *Section

	for _, value := range group.Values {
		var section *Section
		if b.multiple {
			section = b.newSection(value)
			b.doc.Items = append(b.doc.Items, section)
		} else {
			if shared == nil {
				shared = b.newSection("")
				b.doc.Items = append(b.doc.Items, shared)
			}
			section = shared
		}

		if b.multiple || b.queryID == 0 {
			b.row = b.newRow()
			section.Items = append(section.Items, b.row)
		}

		for _, name := range b.names {
			cell, err := b.newCell(b.in.Graphs[name], group.Name, value)
			if err != nil {
				return err
			}
			b.row.Items = append(b.row.Items, cell)
			b.queryID++
		}
	}
	return nil
}

func (b *builder) newSection(title string) *Section {
	return &Section{
		ItemID:   b.ids.Next(),
		ItemType: TypeSection,
		Title:    title,
		Layout:   b.in.Layout,
		Items:    []*Row{},
	}
}

func (b *builder) newRow() *Row {
	return &Row{
		ItemID:   b.ids.Next(),
		ItemType: TypeRow,
		Items:    []*Cell{},
	}
}

// newCell instantiates tmpl for one node value, registers its query and
// wraps the graph in a cell.
func (b *builder) newCell(tmpl config.GraphTemplate, group, value string) (*Cell, error) {
	graph := &GraphItem{
		ItemID:   b.ids.Next(),
		ItemType: config.DefaultItemType,
		Title:    tmpl.Title,
		CellSpan: tmpl.CellSpan,
	}
	if tmpl.ItemType != "" {
		graph.ItemType = tmpl.ItemType
	}
	if tmpl.Options != nil {
		graph.Options = make(map[string]any, len(tmpl.Options))
		for k, v := range tmpl.Options {
			graph.Options[k] = v
		}
	}
	for k, v := range tmpl.Extra {
		if reservedGraphKeys[k] {
			b.warnOnce("reserved:"+tmpl.Name+":"+k, "graph %q: ignoring reserved key %q", tmpl.Name, k)
			continue
		}
		if graph.Extra == nil {
			graph.Extra = make(map[string]any, len(tmpl.Extra))
		}
		graph.Extra[k] = v
	}
	if !b.multiple {
		graph.Title = value
	}

	if tmpl.Query == "" {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Graph '%s' has no query", tmpl.Name),
			"Add a 'query' to the graph template")
	}
	if unbound, err := render.Unbound(tmpl.Query, group); err == nil && len(unbound) > 0 {
		b.warnOnce("unbound:"+tmpl.Name+":"+group,
			"graph %q: %s not bound for node group %q, rendering as empty", tmpl.Name, render.Describe(unbound), group)
	}
	rendered, err := render.Query(tmpl.Query, group, value)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTemplate,
			fmt.Sprintf("Cannot render the query of graph '%s'", tmpl.Name),
			"Every '{{' in the query needs a matching '}}'")
	}

	key := strconv.Itoa(b.queryID)
	b.doc.Queries[key] = Query{Name: key, Targets: []string{rendered}}
	graph.Query = key

	span := tmpl.CellSpan
	if span == 0 {
		span = config.DefaultCellSpan
	}
	return &Cell{
		ItemID:   b.ids.Next(),
		ItemType: TypeCell,
		Span:     span,
		Items:    []*GraphItem{graph},
	}, nil
}

func (b *builder) warnOnce(key, format string, args ...any) {
	if b.warned[key] {
		return
	}
	b.warned[key] = true
	b.log.Warn(format, args...)
}
