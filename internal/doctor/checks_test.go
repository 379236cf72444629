package doctor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatusNames(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", CheckStatus(7).String())
	assert.Equal(t, "unknown", CheckStatus(-1).String())
}

func TestCheckResultJSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "server", Status: StatusWarn, Message: "slow"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"server","status":"warn","message":"slow"}`, string(data))
}

func TestCheckStatusRoundTrip(t *testing.T) {
	for _, status := range []CheckStatus{StatusPass, StatusWarn, StatusFail} {
		t.Run(status.String(), func(t *testing.T) {
			data, err := json.Marshal(CheckResult{Name: "dashboard", Status: status})
			require.NoError(t, err)

			var got CheckResult
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, status, got.Status)
		})
	}
}

func TestCheckStatusUnmarshalRejectsUnknown(t *testing.T) {
	var got CheckResult
	err := json.Unmarshal([]byte(`{"name":"server","status":"broken"}`), &got)
	assert.ErrorContains(t, err, `unknown check status "broken"`)
}

type fakeCheck struct {
	name     string
	category string
	status   CheckStatus
	runs     *[]string
}

func (f *fakeCheck) Name() string     { return f.name }
func (f *fakeCheck) Category() string { return f.category }
func (f *fakeCheck) Run() CheckResult {
	*f.runs = append(*f.runs, f.name)
	return CheckResult{Name: f.name, Status: f.status}
}

func TestRunAllAndSections(t *testing.T) {
	var runs []string
	checks := []Check{
		&fakeCheck{name: "server", category: CategoryServer, status: StatusFail, runs: &runs},
		&fakeCheck{name: "config_file", category: CategoryConfig, status: StatusPass, runs: &runs},
		&fakeCheck{name: "metadata", category: CategoryConfig, status: StatusWarn, runs: &runs},
	}

	results := RunAll(checks)
	assert.Equal(t, []string{"server", "config_file", "metadata"}, runs)
	require.Len(t, results, 3)

	sections := Sections(checks, results)
	require.Len(t, sections, 2, "categories without checks are dropped")
	assert.Equal(t, CategoryConfig, sections[0].Category)
	assert.Equal(t, "config_file", sections[0].Results[0].Name)
	assert.Equal(t, "metadata", sections[0].Results[1].Name)
	assert.Equal(t, CategoryServer, sections[1].Category)
}

func TestTally(t *testing.T) {
	tests := []struct {
		name     string
		statuses []CheckStatus
		want     Tally
		summary  string
	}{
		{"all pass", []CheckStatus{StatusPass, StatusPass}, Tally{Pass: 2}, "Everything looks good"},
		{"one warning", []CheckStatus{StatusPass, StatusWarn}, Tally{Pass: 1, Warn: 1}, "1 issue found"},
		{"warn and fail", []CheckStatus{StatusWarn, StatusFail}, Tally{Warn: 1, Fail: 1}, "2 issues found"},
		{"nothing ran", nil, Tally{}, "Everything looks good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []CheckResult
			for _, s := range tt.statuses {
				results = append(results, CheckResult{Status: s})
			}
			got := Count(results)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.summary, got.String())
		})
	}
}
