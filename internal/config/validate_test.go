package config

import (
	"testing"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validFile() *File {
	return &File{
		Nodes: []NodeSource{{Name: "node", Tokens: []string{"web-01"}}},
		Graphs: map[string]GraphTemplate{
			"graph-1": {Name: "graph-1", Query: "load.{{node}}", CellSpan: 3},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *File)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(f *File) {},
		},
		{
			name:    "no graphs",
			mutate:  func(f *File) { f.Graphs = nil },
			wantErr: "No graphs defined",
		},
		{
			name: "graph without query",
			mutate: func(f *File) {
				f.Graphs["graph-2"] = GraphTemplate{Name: "graph-2"}
			},
			wantErr: "Graph 'graph-2' is invalid",
		},
		{
			name: "negative cellspan",
			mutate: func(f *File) {
				f.Graphs["graph-1"] = GraphTemplate{Name: "graph-1", Query: "q", CellSpan: -1}
			},
			wantErr: "Graph 'graph-1' is invalid",
		},
		{
			name:    "bad layout",
			mutate:  func(f *File) { f.Metadata.Layout = strPtr("grid") },
			wantErr: "dashboard_metadata is invalid",
		},
		{
			name:    "bad url",
			mutate:  func(f *File) { f.Metadata.TesseraURL = strPtr("not a url") },
			wantErr: "dashboard_metadata is invalid",
		},
		{
			name:    "empty group name",
			mutate:  func(f *File) { f.Nodes = append(f.Nodes, NodeSource{Name: " "}) },
			wantErr: "position 1 has an empty name",
		},
		{
			name:   "no nodes section",
			mutate: func(f *File) { f.Nodes = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(f)
			err := Validate(f)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var tgErr *errors.Error
			require.ErrorAs(t, err, &tgErr)
			assert.Equal(t, errors.ErrConfig, tgErr.Code)
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

func TestFormatValidationErrorNames(t *testing.T) {
	err := getValidator().Struct(GraphTemplate{Name: "g", CellSpan: -2})
	require.Error(t, err)

	msg := formatValidationError(err).Error()
	assert.Contains(t, msg, "'cellspan' must be at least 0, got -2")
	assert.Contains(t, msg, "'query' is required")
}

func TestValidateAcceptsWideCellSpan(t *testing.T) {
	f := validFile()
	f.Graphs["graph-1"] = GraphTemplate{Name: "graph-1", Query: "q", CellSpan: 24}
	assert.NoError(t, Validate(f))
}
