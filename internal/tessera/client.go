// Package tessera talks to the Tessera dashboard API.
package tessera

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dailymotion/tessera-gen/internal/dashboard"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/go-resty/resty/v2"
)

const (
	dashboardsPath = "/api/dashboard/"

	// DryRunID is what CreateDashboard returns when nothing is sent.
	DryRunID = "new"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// DryRun writes every mutating request to Out instead of sending it.
	DryRun bool
	// Out receives dry-run payloads. Defaults to os.Stdout.
	Out       io.Writer
	Log       logger.Logger
	UserAgent string
}

// Gateway is the part of the API needed to publish a dashboard.
type Gateway interface {
	CreateDashboard(ctx context.Context, meta dashboard.Metadata) (string, error)
	UpdateMetadata(ctx context.Context, id string, meta dashboard.Metadata) error
	UpdateDefinition(ctx context.Context, id string, doc *dashboard.Document) error
}

// Client is the HTTP client for a Tessera server.
type Client struct {
	client *resty.Client
	cfg    Config
	log    logger.Logger
}

// DashboardSummary is one entry of the dashboard listing.
type DashboardSummary struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Category string      `json:"category"`
	Tags     []string    `json:"tags"`
	Href     string      `json:"href"`
	ViewHref string      `json:"view_href"`
}

// createResponse is the body returned by a create. Only the references
// are read.
type createResponse struct {
	DashboardHref string      `json:"dashboard_href"`
	Href          string      `json:"href"`
	ID            json.Number `json:"id"`
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		client: client,
		cfg:    cfg,
		log:    logger.OrDefault(cfg.Log),
	}
}

// DryRun reports whether requests are printed instead of sent.
func (c *Client) DryRun() bool {
	return c.cfg.DryRun
}

// ListDashboards returns every dashboard on the server. It is read-only
// and is sent even in dry-run mode.
func (c *Client) ListDashboards(ctx context.Context) ([]DashboardSummary, error) {
	var result []DashboardSummary
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(dashboardsPath)
	if err := c.check(http.MethodGet, dashboardsPath, resp, err); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateDashboard creates a dashboard from meta and returns its id.
func (c *Client) CreateDashboard(ctx context.Context, meta dashboard.Metadata) (string, error) {
	if c.cfg.DryRun {
		if err := c.dump(http.MethodPost, dashboardsPath, meta); err != nil {
			return "", err
		}
		return DryRunID, nil
	}

	var result createResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(meta).
		SetResult(&result).
		Post(dashboardsPath)
	if err := c.check(http.MethodPost, dashboardsPath, resp, err); err != nil {
		return "", err
	}

	id := createdID(result)
	if id == "" {
		return "", errors.New(errors.ErrTransport,
			"Tessera didn't return the new dashboard's id",
			"Response body: "+strings.TrimSpace(resp.String()))
	}
	c.log.Debug("created dashboard %s", id)
	return id, nil
}

// UpdateMetadata replaces the metadata of dashboard id.
func (c *Client) UpdateMetadata(ctx context.Context, id string, meta dashboard.Metadata) error {
	return c.put(ctx, dashboard.DashboardPath(id), meta)
}

// UpdateDefinition replaces the definition of dashboard id.
func (c *Client) UpdateDefinition(ctx context.Context, id string, doc *dashboard.Document) error {
	return c.put(ctx, dashboard.DefinitionPath(id), doc)
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	if c.cfg.DryRun {
		return c.dump(http.MethodPut, path, body)
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Put(path)
	return c.check(http.MethodPut, path, resp, err)
}

// check turns a failed request or a non-2xx response into a TRANSPORT error.
func (c *Client) check(method, path string, resp *resty.Response, err error) error {
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("%s %s failed", method, path),
			"Check --tessera-url and that the server is reachable")
	}
	c.log.Debug("%s %s: %s (%s)", method, path, resp.Status(), resp.Time())
	if resp.IsError() {
		e := errors.New(errors.ErrTransport,
			fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode()),
			"Check the dashboard id and the Tessera server logs")
		if body := strings.TrimSpace(resp.String()); body != "" {
			e.Cause = fmt.Errorf("%s", body)
		}
		return e
	}
	return nil
}

// dump writes a would-be request to the dry-run writer.
func (c *Client) dump(method, path string, body any) error {
	payload, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Cannot encode the %s %s payload", method, path),
			"")
	}
	_, err = fmt.Fprintf(c.cfg.Out, "%s %s%s\n%s\n", method, c.client.BaseURL, path, payload)
	return err
}

func createdID(r createResponse) string {
	for _, href := range []string{r.DashboardHref, r.Href} {
		id := strings.TrimPrefix(href, dashboardsPath)
		if id != href && id != "" {
			return strings.SplitN(id, "/", 2)[0]
		}
	}
	return r.ID.String()
}
