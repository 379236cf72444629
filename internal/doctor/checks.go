// Package doctor runs diagnostic checks on a dashboard config and the
// Tessera server it targets.
package doctor

import (
	"fmt"
	"slices"

	"github.com/dailymotion/tessera-gen/internal/util"
)

type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

var statusNames = [...]string{StatusPass: "pass", StatusWarn: "warn", StatusFail: "fail"}

func (s CheckStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText makes the status read as its name in JSON.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names MarshalText writes.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	i := slices.Index(statusNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown check status %q", text)
	}
	*s = CheckStatus(i)
	return nil
}

const (
	CategoryConfig = "CONFIG"
	CategoryNodes  = "NODES"
	CategoryGraphs = "GRAPHS"
	CategoryServer = "SERVER"
)

// CategoryOrder is the report order.
var CategoryOrder = []string{CategoryConfig, CategoryNodes, CategoryGraphs, CategoryServer}

type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Check is one diagnostic. Category is one of the Category constants.
type Check interface {
	Name() string
	Category() string
	Run() CheckResult
}

// RunAll runs the checks in order. Later checks may read what earlier ones
// fetched, so they never run concurrently.
func RunAll(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = check.Run()
	}
	return results
}

// Section is the results of one category, in run order.
type Section struct {
	Category string        `json:"name"`
	Results  []CheckResult `json:"results"`
}

// Sections pairs checks with their results and groups them in CategoryOrder.
// Categories without checks are left out.
func Sections(checks []Check, results []CheckResult) []Section {
	var out []Section
	for _, cat := range CategoryOrder {
		sec := Section{Category: cat}
		for i, check := range checks {
			if check.Category() == cat {
				sec.Results = append(sec.Results, results[i])
			}
		}
		if len(sec.Results) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

// Tally counts results per status.
type Tally struct {
	Pass int `json:"pass"`
	Warn int `json:"warn"`
	Fail int `json:"fail"`
}

func Count(results []CheckResult) Tally {
	var t Tally
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			t.Pass++
		case StatusWarn:
			t.Warn++
		case StatusFail:
			t.Fail++
		}
	}
	return t
}

// Issues is the number of warnings and failures.
func (t Tally) Issues() int {
	return t.Warn + t.Fail
}

func (t Tally) String() string {
	n := t.Issues()
	if n == 0 {
		return "Everything looks good"
	}
	return fmt.Sprintf("%d %s found", n, util.Pluralize(n, "issue", "issues"))
}

func pass(name, format string, args ...any) CheckResult {
	return CheckResult{Name: name, Status: StatusPass, Message: fmt.Sprintf(format, args...)}
}
