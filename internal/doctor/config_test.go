package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
nodes:
    node: web-01--03
dashboard_graphs:
    graph-1:
        query: "load.{{node}}"
    graph-2:
        query: "mem.{{node}}"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigFileCheck(t *testing.T) {
	dir := t.TempDir()

	r := (&ConfigFileCheck{Path: filepath.Join(dir, "missing.yaml")}).Run()
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Suggestion, "tessera-gen init")

	r = (&ConfigFileCheck{Path: dir}).Run()
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "is a directory")

	path := writeConfig(t, validConfig)
	r = (&ConfigFileCheck{Path: path}).Run()
	assert.Equal(t, StatusPass, r.Status)
}

func TestConfigSchemaCheck(t *testing.T) {
	c := &ConfigSchemaCheck{Path: writeConfig(t, validConfig)}
	r := c.Run()
	assert.Equal(t, StatusPass, r.Status)
	assert.Equal(t, "2 graph templates", r.Message)
	require.NotNil(t, c.File)

	c = &ConfigSchemaCheck{Path: writeConfig(t, "nodes:\n    node: a\n")}
	r = c.Run()
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "No graphs defined")
	assert.NotEmpty(t, r.Suggestion)
	assert.Nil(t, c.File)
}

func TestMetadataCheck(t *testing.T) {
	base := config.Metadata{
		TesseraURL: "http://tessera:5000",
		Layout:     config.DefaultLayout,
		Title:      "Web farm",
	}

	tests := []struct {
		name    string
		mutate  func(m *config.Metadata)
		status  CheckStatus
		message string
	}{
		{"create", func(m *config.Metadata) {}, StatusPass, `Push creates a new dashboard "Web farm"`},
		{"replace", func(m *config.Metadata) { m.DashboardID = "12" }, StatusPass, `Push replaces dashboard 12 ("Web farm")`},
		{"no url", func(m *config.Metadata) { m.TesseraURL = "" }, StatusFail, "No Tessera URL configured"},
		{"bad layout", func(m *config.Metadata) { m.Layout = "grid" }, StatusFail, "Unknown layout 'grid'"},
		{"default title", func(m *config.Metadata) { m.Title = config.DefaultTitle }, StatusWarn, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			r := (&MetadataCheck{Metadata: m}).Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Contains(t, r.Message, tt.message)
		})
	}
}
