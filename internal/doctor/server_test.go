package doctor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/tessera"
	"github.com/stretchr/testify/assert"
)

type fakeLister struct {
	list []tessera.DashboardSummary
	err  error
}

func (f *fakeLister) ListDashboards(ctx context.Context) ([]tessera.DashboardSummary, error) {
	return f.list, f.err
}

func TestServerAndDashboardChecks(t *testing.T) {
	lister := &fakeLister{list: []tessera.DashboardSummary{
		{ID: json.Number("12"), Title: "Web farm"},
		{ID: json.Number("13"), Title: "Disks"},
	}}
	server := &ServerCheck{URL: "http://tessera:5000", Client: lister}

	r := server.Run()
	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "Reached http://tessera:5000")
	assert.Contains(t, r.Message, "2 dashboards")

	tests := []struct {
		id     string
		status CheckStatus
		want   string
	}{
		{"", StatusPass, "push creates a new one"},
		{"12", StatusPass, `Dashboard 12 exists ("Web farm")`},
		{"99", StatusFail, "Dashboard 99 not found"},
	}
	for _, tt := range tests {
		t.Run("id "+tt.id, func(t *testing.T) {
			r := (&DashboardCheck{DashboardID: tt.id, Server: server}).Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Contains(t, r.Message, tt.want)
		})
	}
}

func TestServerCheckUnreachable(t *testing.T) {
	lister := &fakeLister{err: errors.New(errors.ErrTransport, "GET /api/dashboard/ failed", "Check --tessera-url")}
	server := &ServerCheck{URL: "http://tessera:5000", Client: lister}

	r := server.Run()
	assert.Equal(t, StatusFail, r.Status)
	assert.Equal(t, "Cannot reach http://tessera:5000: GET /api/dashboard/ failed", r.Message)
	assert.Equal(t, "Check --tessera-url", r.Suggestion)

	r = (&DashboardCheck{DashboardID: "12", Server: server}).Run()
	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Message, "Skipped")
}
