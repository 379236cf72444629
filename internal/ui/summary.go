package ui

import (
	"fmt"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/util"
	"github.com/dustin/go-humanize"
)

// BuildSummary describes a built dashboard for the final status line.
type BuildSummary struct {
	Sections int
	Rows     int
	Cells    int
	Queries  int
	// PayloadBytes is the size of the encoded definition.
	PayloadBytes int
}

// RenderBuildSummary formats s as a single muted line, e.g.
// "2 sections, 2 rows, 6 graphs, 6 queries (3.1 kB)".
func RenderBuildSummary(s BuildSummary) string {
	parts := []string{
		plural(s.Sections, "section"),
		plural(s.Rows, "row"),
		plural(s.Cells, "graph"),
		plural(s.Queries, "query"),
	}
	line := strings.Join(parts, ", ")
	if s.PayloadBytes > 0 {
		line += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(s.PayloadBytes)))
	}
	return MutedStyle().Render(line)
}

// RenderPushResult formats the outcome of a push.
func RenderPushResult(id, viewURL string, created, dryRun bool) string {
	verb := "Updated"
	if created {
		verb = "Created"
	}
	if dryRun {
		return WarningStyle().Render(SymbolSkipped) + " Dry run, nothing was sent"
	}
	line := SuccessStyle().Render(SymbolSuccess) + " " + verb + " dashboard " + BoldStyle().Render(id)
	if viewURL != "" {
		line += " " + InfoStyle().Render(viewURL)
	}
	return line
}

func plural(n int, word string) string {
	many := word + "s"
	if strings.HasSuffix(word, "y") {
		many = strings.TrimSuffix(word, "y") + "ies"
	}
	return humanize.Comma(int64(n)) + " " + util.Pluralize(n, word, many)
}
