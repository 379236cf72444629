package config

// Defaults applied to dashboard metadata before the config file and
// command-line layers.
const (
	DefaultLayout   = "fixed"
	DefaultTitle    = "New Dashboard"
	DefaultCategory = "New Category"

	// DefaultItemType is the graph type used when a template sets none.
	DefaultItemType = "standard_time_series"
	// DefaultCellSpan is the cell width used when a template sets no cellspan.
	DefaultCellSpan = 3
)

// File is the parsed dashboard config file. It is produced once by Load and
// never modified afterwards.
type File struct {
	// Path the config was read from.
	Path string

	// Nodes in declaration order. Empty when the file has no nodes section.
	Nodes []NodeSource

	// Metadata holds the dashboard_metadata section as written.
	Metadata MetadataConfig

	// Graphs maps template name to template. Iteration order is irrelevant:
	// the builder sorts by name.
	Graphs map[string]GraphTemplate

	// Debug suppresses network transmission (dry run).
	Debug bool
}

// NodeSource is one entry of the nodes section: a group name and its raw,
// unexpanded tokens. A scalar value yields a single token.
type NodeSource struct {
	Name   string
	Tokens []string
}

// MetadataConfig is the dashboard_metadata section. Pointer fields
// distinguish "absent" from "set to the zero value".
type MetadataConfig struct {
	TesseraURL  *string   `validate:"omitempty,url"`
	DashboardID *string   `validate:"omitempty"`
	Title       *string   `validate:"omitempty"`
	Category    *string   `validate:"omitempty"`
	Layout      *string   `validate:"omitempty,oneof=fixed fluid"`
	Tags        *[]string `validate:"omitempty"`
}

// GraphTemplate is a named graph definition applied to every node value.
type GraphTemplate struct {
	Name     string `validate:"required"`
	Title    string
	ItemType string
	// CellSpan is the width of the wrapping cell. Zero means DefaultCellSpan.
	CellSpan int `validate:"min=0"`
	Options  map[string]any
	// Query is the query template, with {{<group>}} placeholders.
	Query string `validate:"required"`
	// Extra holds any other keys, copied verbatim onto each graph item.
	Extra map[string]any
}

// Metadata is the final, merged dashboard metadata.
type Metadata struct {
	TesseraURL  string
	DashboardID string
	Layout      string
	Title       string
	Category    string
	Tags        []string
}

// IsCreate reports whether the dashboard must be created rather than updated.
func (m Metadata) IsCreate() bool {
	return m.DashboardID == ""
}
