package cli

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/nodes"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string
	TesseraURL     string
	Nodes          string
	Title          string
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use flags and defaults
}

const (
	exampleTesseraURL = "http://127.0.0.1:5000"
	exampleNodes      = "web-001--010"
	exampleTitle      = "system graphs"
)

func newInitCmd(g *globalFlags) *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example dashboard config",
		Long: `Write an example dashboard config with two graph templates, to edit and
then push.

Examples:
  tessera-gen init
  tessera-gen init disks.yaml --nodes "sda sdb" --defaults`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = g.ConfigFile
			if len(args) == 1 {
				opts.Path = args[0]
			}
			if g.TesseraURL != "" {
				opts.TesseraURL = g.TesseraURL
			}
			if !isInteractive(cmd.InOrStdin()) {
				opts.NonInteractive = true
			}
			return Init(cmd, *opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Nodes, "nodes", "", "node names or ranges, space separated")
	f.StringVar(&opts.Title, config.KeyTitle, "", "dashboard title")
	f.BoolVar(&opts.Overwrite, "force", false, "overwrite an existing file")
	f.BoolVar(&opts.NonInteractive, "defaults", false, "don't prompt, use flags and defaults")

	return cmd
}

// Init writes the example config.
func Init(cmd *cobra.Command, opts InitOptions) error {
	out := cmd.ErrOrStderr()

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if opts.TesseraURL == "" {
		opts.TesseraURL = exampleTesseraURL
	}
	if opts.Nodes == "" {
		opts.Nodes = exampleNodes
	}
	if opts.Title == "" {
		opts.Title = exampleTitle
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	data, err := renderExampleConfig(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+opts.Path,
			"Check that the directory exists and is writable")
	}

	ui.FprintSuccess(out, "Wrote "+opts.Path)
	fmt.Fprintln(out, ui.MutedStyle().Render("  Next: tessera-gen render -f "+opts.Path))
	return nil
}

func promptInit(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tessera URL").
				Value(&opts.TesseraURL).
				Validate(func(s string) error {
					u, err := url.Parse(strings.TrimSpace(s))
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("enter a URL like %s", exampleTesseraURL)
					}
					return nil
				}),
			huh.NewInput().
				Title("Nodes").
				Description("Names or ranges like web-001--010, space separated").
				Value(&opts.Nodes).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("at least one node is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Dashboard title").
				Value(&opts.Title),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Failed to get user input",
			"Use --defaults to skip the prompts")
	}
	return nil
}

// renderExampleConfig builds the example as a YAML node tree so keys stay
// in a readable order and carry comments.
func renderExampleConfig(opts InitOptions) ([]byte, error) {
	nodeTokens := strings.Fields(opts.Nodes)
	var nodesValue *yaml.Node
	if len(nodeTokens) == 1 {
		nodesValue = scalarNode(nodeTokens[0])
	} else {
		nodesValue = seqNode(nodeTokens...)
	}

	nodesKey := scalarNode("nodes")
	nodesKey.HeadComment = "Each group name is a placeholder in the queries below.\n" +
		"Remove this section to read node names from stdin instead."

	graphsKey := scalarNode("dashboard_graphs")
	graphsKey.HeadComment = "Graph templates, applied to every node in name order."

	loadQuery := scalarNode("sortByName(aliasByMetric(collectd.{{node}}.load.load.*))")
	memQuery := scalarNode(strings.Join([]string{
		"group(",
		`    alias(collectd.{{node}}.memory.memory.used.value,"used"),`,
		`    alias(collectd.{{node}}.memory.memory.cached.value,"cached"),`,
		`    alias(collectd.{{node}}.memory.memory.free.value,"free")`,
		")",
	}, "\n"))
	memQuery.Style = yaml.LiteralStyle

	root := mapNode(
		nodesKey, mapNode(scalarNode(nodes.DefaultGroup), nodesValue),
		scalarNode("dashboard_metadata"), mapNode(
			scalarNode(config.KeyTesseraURL), scalarNode(opts.TesseraURL),
			scalarNode(config.KeyTitle), scalarNode(opts.Title),
			scalarNode(config.KeyCategory), scalarNode(config.DefaultCategory),
			scalarNode(config.KeyTags), seqNode("system"),
			scalarNode(config.KeyLayout), scalarNode("fluid"),
		),
		graphsKey, mapNode(
			scalarNode("graph-1"), mapNode(
				scalarNode("title"), scalarNode("Load average"),
				scalarNode("cellspan"), intNode(config.DefaultCellSpan),
				scalarNode("options"), mapNode(scalarNode("palette"), scalarNode("brewerdiv4")),
				scalarNode("query"), loadQuery,
			),
			scalarNode("graph-2"), mapNode(
				scalarNode("title"), scalarNode("Memory"),
				scalarNode("cellspan"), intNode(config.DefaultCellSpan),
				scalarNode("item_type"), scalarNode("stacked_area_chart"),
				scalarNode("query"), memQuery,
			),
		),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode the example config", "")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode the example config", "")
	}
	return buf.Bytes(), nil
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)}
}

func seqNode(values ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		n.Content = append(n.Content, scalarNode(v))
	}
	return n
}

func mapNode(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}
