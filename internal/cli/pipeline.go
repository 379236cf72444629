package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/dashboard"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/nodes"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// loadSettings reads the config file and merges it with the environment
// and the command's flags.
func loadSettings(path string, flags *pflag.FlagSet, log logger.Logger) (*config.File, *config.Settings, error) {
	f, err := config.LoadWithLogger(path, log)
	if err != nil {
		return nil, nil, err
	}
	s, err := config.Resolve(f, flags)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("loaded %s: %d node groups, %d graphs, dry run %v", f.Path, len(f.Nodes), len(f.Graphs), s.DryRun)
	return f, s, nil
}

// loadOptionalSettings is loadSettings for commands that work without a
// config file: a missing default file is not an error.
func loadOptionalSettings(path string, explicit bool, flags *pflag.FlagSet, log logger.Logger) (*config.Settings, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Debug("no %s, using flags and environment only", path)
			return config.Resolve(nil, flags)
		}
	}
	_, s, err := loadSettings(path, flags, log)
	return s, err
}

// buildDocument resolves the nodes and builds the dashboard definition for
// meta.
func buildDocument(f *config.File, meta config.Metadata, fromStdin bool, stdin io.Reader, log logger.Logger) (*dashboard.Document, error) {
	set, err := nodes.Resolve(f.Nodes, nodes.ResolveOptions{
		FromStdin: fromStdin,
		Stdin:     stdin,
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	doc, err := dashboard.Build(dashboard.BuildInput{
		Nodes:       set,
		Graphs:      f.Graphs,
		Layout:      meta.Layout,
		DashboardID: meta.DashboardID,
		Log:         log,
	})
	if err != nil {
		return nil, err
	}
	if err := dashboard.Verify(doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Built an inconsistent dashboard",
			"Please report this with your config file")
	}
	return doc, nil
}

// buildSummary describes doc for the status line.
func buildSummary(doc *dashboard.Document) ui.BuildSummary {
	st := dashboard.Summarize(doc)
	s := ui.BuildSummary{
		Sections: st.Sections,
		Rows:     st.Rows,
		Cells:    st.Graphs,
		Queries:  st.Queries,
	}
	if raw, err := json.Marshal(doc); err == nil {
		s.PayloadBytes = len(raw)
	}
	return s
}

// isInteractive reports whether r is a terminal we can prompt on.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
