package dashboard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/config"
)

// Metadata is the dashboard record sent to the metadata endpoints. It lives
// next to the definition document, not inside it.
type Metadata struct {
	Category       string   `json:"category"`
	DefinitionHref string   `json:"definition_href"`
	Description    string   `json:"description"`
	Summary        string   `json:"summary"`
	Href           string   `json:"href"`
	ID             string   `json:"id,omitempty"`
	Tags           []string `json:"tags"`
	Title          string   `json:"title"`
	ViewHref       string   `json:"view_href"`
	ImportedFrom   string   `json:"imported_from"`
}

var slugRE = regexp.MustCompile(`[^a-z0-9]+`)

// NewMetadata builds the metadata record for m. When m has no dashboard id
// the href fields are left empty; the server fills them in on create.
func NewMetadata(m config.Metadata) Metadata {
	tags := make([]string, 0, len(m.Tags))
	tags = append(tags, m.Tags...)

	md := Metadata{
		Category: m.Category,
		Tags:     tags,
		Title:    m.Title,
	}
	if m.DashboardID != "" {
		md.ID = m.DashboardID
		md.Href = DashboardPath(m.DashboardID)
		md.DefinitionHref = DefinitionPath(m.DashboardID)
		md.ViewHref = ViewPath(m.DashboardID, m.Title)
	}
	return md
}

// ViewPath is the browser path of a dashboard.
func ViewPath(id, title string) string {
	return fmt.Sprintf("/dashboards/%s/%s", id, slugify(title))
}

func slugify(s string) string {
	slug := slugRE.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
