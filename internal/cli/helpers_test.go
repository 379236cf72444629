package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const singleGraphConfig = `
nodes:
    node: web-01--02

dashboard_metadata:
    title: Web farm
    category: Farms
    tags: [system]

dashboard_graphs:
    graph-1:
        title: Load
        query: "collectd.{{node}}.load"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI executes a fresh command tree with the given stdin and args.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { machineMode = false })

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// tesseraStub is a minimal Tessera API: it accepts every write and
// answers creates with dashboard 42.
type tesseraStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	list     string
}

func newTesseraStub(t *testing.T) (*tesseraStub, *httptest.Server) {
	t.Helper()
	stub := &tesseraStub{list: "[]"}
	srv := httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(srv.Close)
	return stub, srv
}

func (s *tesseraStub) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
	list := s.list
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/dashboard/":
		_, _ = io.WriteString(w, list)
	case r.Method == http.MethodPost && r.URL.Path == "/api/dashboard/":
		_, _ = io.WriteString(w, `{"dashboard_href": "/api/dashboard/42", "view_href": "/dashboards/42/web-farm"}`)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *tesseraStub) routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	for i, r := range s.requests {
		out[i] = r.Method + " " + r.Path
	}
	return out
}

func (s *tesseraStub) decodeBody(t *testing.T, i int, v any) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Less(t, i, len(s.requests))
	require.NoError(t, json.Unmarshal(s.requests[i].Body, v))
}
