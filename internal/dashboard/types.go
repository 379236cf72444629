package dashboard

import (
	"encoding/json"
	"fmt"
)

// Item types of the structural nodes.
const (
	TypeDefinition = "dashboard_definition"
	TypeSection    = "section"
	TypeRow        = "row"
	TypeCell       = "cell"
)

// Document is a dashboard definition: the item tree plus the query table
// its graphs point into.
type Document struct {
	ItemID        string           `json:"item_id"`
	ItemType      string           `json:"item_type"`
	DashboardHref string           `json:"dashboard_href"`
	Href          string           `json:"href"`
	Queries       map[string]Query `json:"queries"`
	Items         []*Section       `json:"items"`
}

// Query is one entry of the query table.
type Query struct {
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// Section groups rows under an optional title.
type Section struct {
	ItemID   string `json:"item_id"`
	ItemType string `json:"item_type"`
	Title    string `json:"title"`
	Layout   string `json:"layout"`
	Items    []*Row `json:"items"`
}

// Row is a horizontal run of cells.
type Row struct {
	ItemID   string  `json:"item_id"`
	ItemType string  `json:"item_type"`
	Items    []*Cell `json:"items"`
}

// Cell holds exactly one graph.
type Cell struct {
	ItemID   string       `json:"item_id"`
	ItemType string       `json:"item_type"`
	Span     int          `json:"span"`
	Items    []*GraphItem `json:"items"`
}

// GraphItem is a graph template instantiated for one node value. Query is
// the key of its entry in Document.Queries.
type GraphItem struct {
	ItemID   string
	ItemType string
	Title    string
	CellSpan int
	Options  map[string]any
	Query    string
	// Extra keys from the template, emitted alongside the known ones.
	Extra map[string]any
}

// MarshalJSON flattens Extra into the item object.
func (g *GraphItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(g.Extra)+6)
	for k, v := range g.Extra {
		out[k] = v
	}
	out["item_id"] = g.ItemID
	out["item_type"] = g.ItemType
	out["query"] = g.Query
	if g.Title != "" {
		out["title"] = g.Title
	}
	if g.CellSpan != 0 {
		out["cellspan"] = g.CellSpan
	}
	if g.Options != nil {
		out["options"] = g.Options
	}
	return json.Marshal(out)
}

// WithDashboardID returns a copy of d whose hrefs point at dashboard id.
// The item tree is shared with d.
func (d *Document) WithDashboardID(id string) *Document {
	cp := *d
	cp.DashboardHref, cp.Href = documentHrefs(id)
	return &cp
}

// Graphs returns every graph item in document order.
func (d *Document) Graphs() []*GraphItem {
	var out []*GraphItem
	for _, s := range d.Items {
		for _, r := range s.Items {
			for _, c := range r.Items {
				out = append(out, c.Items...)
			}
		}
	}
	return out
}

func newDocument(dashboardID string) *Document {
	doc := &Document{
		ItemID:   RootItemID,
		ItemType: TypeDefinition,
		Queries:  make(map[string]Query),
		Items:    []*Section{},
	}
	doc.DashboardHref, doc.Href = documentHrefs(dashboardID)
	return doc
}

// DashboardPath is the API path of a dashboard.
func DashboardPath(id string) string {
	return fmt.Sprintf("/api/dashboard/%s", id)
}

// DefinitionPath is the API path of a dashboard's definition.
func DefinitionPath(id string) string {
	return DashboardPath(id) + "/definition"
}

func documentHrefs(id string) (dashboardHref, href string) {
	return DashboardPath(id), DefinitionPath(id)
}
