package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dailymotion/tessera-gen/internal/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoctor(t *testing.T, out string) DoctorOutput {
	t.Helper()
	var env struct {
		Success bool         `json:"success"`
		Data    DoctorOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	require.True(t, env.Success)
	return env.Data
}

func categoryNames(out DoctorOutput) []string {
	names := make([]string, len(out.Categories))
	for i, c := range out.Categories {
		names[i] = c.Category
	}
	return names
}

func TestDoctorAllClear(t *testing.T) {
	stub, srv := newTesseraStub(t)
	stub.list = `[{"id": 12, "title": "Web farm"}]`
	path := writeTestConfig(t, singleGraphConfig)

	t.Setenv("TESSERA_GEN_DASHBOARD_ID", "12")
	out, _, err := runCLI(t, "", "doctor", "-f", path, "-u", srv.URL, "--json")
	require.NoError(t, err)

	report := decodeDoctor(t, out)
	assert.Equal(t, []string{"CONFIG", "NODES", "GRAPHS", "SERVER"}, categoryNames(report))
	assert.True(t, report.Summary.AllClear, "%+v", report)
	assert.Equal(t, 8, report.Summary.Pass)
	assert.Equal(t, []string{"GET /api/dashboard/"}, stub.routes())
}

func TestDoctorReportsMissingDashboard(t *testing.T) {
	_, srv := newTesseraStub(t)
	path := writeTestConfig(t, singleGraphConfig)
	t.Setenv("TESSERA_GEN_DASHBOARD_ID", "77")

	out, _, err := runCLI(t, "", "doctor", "-f", path, "-u", srv.URL, "--json")
	require.NoError(t, err)

	report := decodeDoctor(t, out)
	assert.False(t, report.Summary.AllClear)
	assert.Equal(t, 1, report.Summary.Fail)

	server := report.Categories[len(report.Categories)-1]
	require.Len(t, server.Results, 2)
	assert.Equal(t, "dashboard", server.Results[1].Name)
	assert.Equal(t, doctor.StatusFail, server.Results[1].Status)
	assert.Contains(t, server.Results[1].Message, "Dashboard 77 not found")
}

func TestDoctorWithoutConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "tessera.yaml")

	out, _, err := runCLI(t, "", "doctor", "-f", missing, "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "tessera-gen diagnostic report")
	assert.Contains(t, out, "No config file at "+missing)
	assert.Contains(t, out, "tessera-gen init")
	assert.Contains(t, out, "issues found")
	assert.NotContains(t, out, "SERVER")
}
