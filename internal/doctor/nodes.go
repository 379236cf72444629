package doctor

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/dashboard"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/nodes"
	"github.com/dailymotion/tessera-gen/internal/render"
	"github.com/dailymotion/tessera-gen/internal/util"
)

// skipped is reported by checks whose input failed to load.
func skipped(name string) CheckResult {
	return CheckResult{
		Name:    name,
		Status:  StatusWarn,
		Message: "Skipped: the config file did not load",
	}
}

// NodesCheck verifies every node group expands to at least one value.
type NodesCheck struct {
	Schema *ConfigSchemaCheck
}

func (c *NodesCheck) Name() string     { return "nodes" }
func (c *NodesCheck) Category() string { return CategoryNodes }

func (c *NodesCheck) Run() CheckResult {
	if c.Schema.File == nil {
		return skipped(c.Name())
	}
	f := c.Schema.File
	if len(f.Nodes) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No nodes section, values must come from stdin",
			Suggestion: fmt.Sprintf("Pipe a line of names to 'tessera-gen push --stdin'; they bind to {{%s}}", nodes.DefaultGroup),
		}
	}

	set, err := nodes.Resolve(f.Nodes, nodes.ResolveOptions{Log: logger.Noop()})
	if err != nil {
		return failFromError(c.Name(), err, "")
	}

	var empty []string
	for _, g := range set {
		if len(g.Values) == 0 {
			empty = append(empty, g.Name)
		}
	}
	if len(empty) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Node groups with no values: " + strings.Join(empty, ", "),
			Suggestion: "Ranges look like web-001--010 and must count up",
		}
	}
	return pass(c.Name(), "%d group%s, %d node%s", len(set), util.Pluralize(len(set), "", "s"),
		set.Len(), util.Pluralize(set.Len(), "", "s"))
}

// PlaceholderCheck verifies each query template only uses placeholders
// that name a node group.
type PlaceholderCheck struct {
	Schema *ConfigSchemaCheck
}

func (c *PlaceholderCheck) Name() string     { return "placeholders" }
func (c *PlaceholderCheck) Category() string { return CategoryGraphs }

func (c *PlaceholderCheck) Run() CheckResult {
	if c.Schema.File == nil {
		return skipped(c.Name())
	}
	f := c.Schema.File

	groups := []string{nodes.DefaultGroup}
	if len(f.Nodes) > 0 {
		groups = groups[:0]
		for _, n := range f.Nodes {
			groups = append(groups, n.Name)
		}
	}

	names := make([]string, 0, len(f.Graphs))
	for name := range f.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)

	var problems []string
	for _, name := range names {
		used, err := render.Placeholders(f.Graphs[name].Query)
		if err != nil {
			return failFromError(c.Name(), err, fmt.Sprintf("Fix the query of graph '%s'", name))
		}
		if len(used) == 0 {
			problems = append(problems, fmt.Sprintf("%s has no placeholder", name))
			continue
		}
		for _, p := range used {
			if !slices.Contains(groups, p) {
				problems = append(problems, fmt.Sprintf("%s uses {{%s}}%s", name, p, util.DidYouMean(p, groups)))
			}
		}
	}

	if len(problems) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    strings.Join(problems, "; "),
			Suggestion: "Placeholders must name a node group (" + render.Describe(groups) + "); others render empty",
		}
	}
	return pass(c.Name(), "Every query uses %s", render.Describe(groups))
}

// BuildCheck builds the dashboard from the config nodes and checks the
// result is consistent.
type BuildCheck struct {
	Schema *ConfigSchemaCheck
	Layout string
}

func (c *BuildCheck) Name() string     { return "build" }
func (c *BuildCheck) Category() string { return CategoryGraphs }

func (c *BuildCheck) Run() CheckResult {
	if c.Schema.File == nil {
		return skipped(c.Name())
	}
	f := c.Schema.File
	if len(f.Nodes) == 0 {
		return pass(c.Name(), "Not built: nodes come from stdin")
	}

	set, err := nodes.Resolve(f.Nodes, nodes.ResolveOptions{Log: logger.Noop()})
	if err != nil {
		return failFromError(c.Name(), err, "")
	}
	layout := c.Layout
	if layout == "" {
		layout = config.DefaultLayout
	}
	doc, err := dashboard.Build(dashboard.BuildInput{
		Nodes:  set,
		Graphs: f.Graphs,
		Layout: layout,
		Log:    logger.Noop(),
	})
	if err != nil {
		return failFromError(c.Name(), err, "")
	}
	if err := dashboard.Verify(doc); err != nil {
		return failFromError(c.Name(), err, "Please report this with your config file")
	}

	st := dashboard.Summarize(doc)
	return pass(c.Name(), "%d section%s, %d graph%s", st.Sections, util.Pluralize(st.Sections, "", "s"),
		st.Graphs, util.Pluralize(st.Graphs, "", "s"))
}
