package cli

import (
	"strings"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/spf13/cobra"
)

// MetadataFlags are the dashboard_metadata overrides shared by push and
// render. Only flags the user sets override the config file.
type MetadataFlags struct {
	DashboardID string
	Title       string
	Layout      string
	Category    string
	Tags        []string
}

// AddMetadataFlags registers --dashboard-id, --title, --layout, --category
// and --tags on a command.
func AddMetadataFlags(cmd *cobra.Command, flags *MetadataFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.DashboardID, config.KeyDashboardID, "d", "", "id of the dashboard to replace")
	f.StringVarP(&flags.Title, config.KeyTitle, "t", "", "dashboard title")
	f.StringVarP(&flags.Layout, config.KeyLayout, "l", "", "section layout (fixed, fluid)")
	f.StringVar(&flags.Category, config.KeyCategory, "", "dashboard category")
	f.StringSliceVarP(&flags.Tags, config.KeyTags, "g", nil, "dashboard tags (tag1,tag2,...)")
}

// stdinArgs accepts no arguments or a single "-", meaning "read nodes
// from standard input".
func stdinArgs(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return nil
	case len(args) == 1 && args[0] == "-":
		return nil
	default:
		return errors.New(errors.ErrInput,
			"Unexpected arguments: "+strings.Join(args, " "),
			"The only argument accepted is '-', to read nodes from stdin")
	}
}
