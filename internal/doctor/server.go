package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/dailymotion/tessera-gen/internal/tessera"
	"github.com/dailymotion/tessera-gen/internal/util"
)

// Lister lists the dashboards of a Tessera server.
type Lister interface {
	ListDashboards(ctx context.Context) ([]tessera.DashboardSummary, error)
}

// ServerCheck verifies the Tessera API answers. Dashboards holds what it
// listed for later checks.
type ServerCheck struct {
	URL        string
	Client     Lister
	Timeout    time.Duration
	Dashboards []tessera.DashboardSummary
	reached    bool
}

func (c *ServerCheck) Name() string     { return "server" }
func (c *ServerCheck) Category() string { return CategoryServer }

func (c *ServerCheck) Run() CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	list, err := c.Client.ListDashboards(ctx)
	if err != nil {
		r := failFromError(c.Name(), err, "Check --tessera-url and that the server is reachable")
		r.Message = fmt.Sprintf("Cannot reach %s: %s", c.URL, r.Message)
		return r
	}
	c.Dashboards = list
	c.reached = true
	return pass(c.Name(), "Reached %s in %s, %d dashboard%s", c.URL,
		time.Since(start).Round(time.Millisecond), len(list), util.Pluralize(len(list), "", "s"))
}

// DashboardCheck verifies the dashboard to replace exists on the server.
type DashboardCheck struct {
	DashboardID string
	Server      *ServerCheck
}

func (c *DashboardCheck) Name() string     { return "dashboard" }
func (c *DashboardCheck) Category() string { return CategoryServer }

func (c *DashboardCheck) Run() CheckResult {
	if c.DashboardID == "" {
		return pass(c.Name(), "No dashboard id, push creates a new one")
	}
	if !c.Server.reached {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Skipped: cannot look up dashboard %s", c.DashboardID),
		}
	}
	for _, d := range c.Server.Dashboards {
		if d.ID.String() == c.DashboardID {
			return pass(c.Name(), "Dashboard %s exists (%q)", c.DashboardID, d.Title)
		}
	}
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("Dashboard %s not found on the server", c.DashboardID),
		Suggestion: "Run 'tessera-gen list' to see the ids, or push with --create",
	}
}
