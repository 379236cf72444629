package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/util"
)

// Config file formats, chosen by file extension.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatHCL  = "hcl"
)

// Top-level keys of the config document.
const (
	keyNodes    = "nodes"
	keyMetadata = "dashboard_metadata"
	keyGraphs   = "dashboard_graphs"
	keyDebug    = "debug"
)

var (
	topLevelKeys = []string{keyNodes, keyMetadata, keyGraphs, keyDebug}
	metadataKeys = []string{KeyTesseraURL, KeyDashboardID, KeyTitle, KeyCategory, KeyLayout, KeyTags}
)

// rawDoc is the format-independent shape every decoder produces. Node
// sources keep their declaration order; everything else is plain data.
type rawDoc struct {
	nodes    []NodeSource
	metadata map[string]any
	graphs   []rawGraph
	hasGraph bool
	debug    bool
}

type rawGraph struct {
	name   string
	fields map[string]any
}

// Load reads and validates a dashboard config file.
func Load(path string) (*File, error) {
	return LoadWithLogger(path, nil)
}

// LoadWithLogger is Load with an explicit logger for warnings about
// ignored keys.
func LoadWithLogger(path string, log logger.Logger) (*File, error) {
	log = logger.OrDefault(log)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'tessera-gen init' to create one, or fix --config-file")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Check the file permissions")
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var raw *rawDoc
	switch format {
	case FormatYAML, FormatJSON:
		raw, err = decodeYAML(data, log)
	case FormatTOML:
		raw, err = decodeTOML(data, log)
	case FormatHCL:
		raw, err = decodeHCL(data, path, log)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			fmt.Sprintf("Check the %s syntax in %s", strings.ToUpper(format), path))
	}

	file, err := buildFile(raw, path, log)
	if err != nil {
		return nil, err
	}

	if err := Validate(file); err != nil {
		return nil, err
	}
	return file, nil
}

// DetectFormat maps a file extension to a config format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", "":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Unsupported config file extension '%s'", filepath.Ext(path)),
			"Use .yaml, .yml, .json, .toml or .hcl")
	}
}

// buildFile converts the decoded document into a File.
func buildFile(raw *rawDoc, path string, log logger.Logger) (*File, error) {
	if !raw.hasGraph || len(raw.graphs) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No graphs defined in "+path,
			"Add a 'dashboard_graphs' section with at least one graph template")
	}

	file := &File{
		Path:   path,
		Nodes:  raw.nodes,
		Graphs: make(map[string]GraphTemplate, len(raw.graphs)),
		Debug:  raw.debug,
	}

	md, err := metadataFromMap(raw.metadata, log)
	if err != nil {
		return nil, err
	}
	file.Metadata = md

	for _, g := range raw.graphs {
		if _, dup := file.Graphs[g.name]; dup {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Graph '%s' is defined twice", g.name),
				"Give every graph template a unique name")
		}
		tmpl, err := graphFromMap(g.name, g.fields)
		if err != nil {
			return nil, err
		}
		file.Graphs[g.name] = tmpl
	}

	return file, nil
}

// metadataFromMap reads the dashboard_metadata section. Keys may use
// dashes or underscores (tessera-url and tessera_url are the same key).
func metadataFromMap(m map[string]any, log logger.Logger) (MetadataConfig, error) {
	var md MetadataConfig
	for k, v := range m {
		if v == nil {
			continue
		}
		switch normalizeKey(k) {
		case "tessera-url":
			s := scalarString(v)
			md.TesseraURL = &s
		case "dashboard-id":
			s := scalarString(v)
			md.DashboardID = &s
		case "title":
			s := scalarString(v)
			md.Title = &s
		case "category":
			s := scalarString(v)
			md.Category = &s
		case "layout":
			s := scalarString(v)
			md.Layout = &s
		case "tags":
			tags, err := stringList(v)
			if err != nil {
				return md, errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid 'tags' in dashboard_metadata",
					"Use a list of strings, like [system, featured]")
			}
			md.Tags = &tags
		default:
			log.Warn("ignoring unknown dashboard_metadata key %q%s", k, util.DidYouMean(normalizeKey(k), metadataKeys))
		}
	}
	return md, nil
}

// graphFromMap reads one graph template. Known keys are typed; every other
// key is kept in Extra.
func graphFromMap(name string, fields map[string]any) (GraphTemplate, error) {
	g := GraphTemplate{Name: name}
	for k, v := range fields {
		switch k {
		case "title":
			g.Title = scalarString(v)
		case "item_type":
			g.ItemType = scalarString(v)
		case "query":
			if v != nil {
				g.Query = scalarString(v)
			}
		case "cellspan":
			n, ok := toInt(v)
			if !ok {
				return g, errors.New(errors.ErrConfig,
					fmt.Sprintf("Graph '%s' has a non-integer cellspan: %v", name, v),
					"Use a whole number between 1 and 12")
			}
			g.CellSpan = n
		case "options":
			if v == nil {
				continue
			}
			opts, ok := v.(map[string]any)
			if !ok {
				return g, errors.New(errors.ErrConfig,
					fmt.Sprintf("Graph '%s' options must be a mapping", name),
					"Write options as key: value pairs")
			}
			g.Options = opts
		default:
			if g.Extra == nil {
				g.Extra = make(map[string]any)
			}
			g.Extra[k] = v
		}
	}
	return g, nil
}

func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "_", "-")
}

// scalarString renders a scalar config value as a string.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

// stringList accepts a list of scalars or a comma-separated string.
func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return splitCSV(t), nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("expected a scalar, got %T", item)
			}
			out = append(out, scalarString(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}

// splitCSV splits "a, b,c" into trimmed, non-empty parts.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toInt converts the numeric types produced by the decoders.
func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	default:
		return 0, false
	}
}

// nodeTokens turns a nodes value (a scalar or a list of scalars) into
// raw tokens.
func nodeTokens(group string, v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("node group '%s' has no value", group)
	case map[string]any:
		return nil, fmt.Errorf("node group '%s' must be a string or a list, not a mapping", group)
	case []any, []string:
		tokens, err := stringList(t)
		if err != nil {
			return nil, fmt.Errorf("node group '%s': %w", group, err)
		}
		return tokens, nil
	default:
		return []string{scalarString(t)}, nil
	}
}
