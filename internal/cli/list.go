package cli

import (
	"context"
	"fmt"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/tessera"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/cobra"
)

type listOptions struct {
	JSON bool
}

func newListCmd(g *globalFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the dashboards on the Tessera server",
		Long: `List the dashboards on the Tessera server, to find the id to pass to
push --dashboard-id.

The server URL comes from --tessera-url, TESSERA_GEN_TESSERA_URL or the
config file's dashboard_metadata.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			machineMode = opts.JSON
			return runList(cmd, g, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the dashboards as JSON")

	return cmd
}

func runList(cmd *cobra.Command, g *globalFlags, opts *listOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Default()

	explicit := cmd.Flags().Changed("config-file")
	s, err := loadOptionalSettings(g.ConfigFile, explicit, cmd.Flags(), log)
	if err != nil {
		return err
	}
	if err := config.ValidateMetadata(s.Metadata, true); err != nil {
		return err
	}

	client := tessera.NewClient(tessera.Config{
		BaseURL:   s.Metadata.TesseraURL,
		Timeout:   s.Timeout,
		Log:       log,
		UserAgent: userAgent(),
	})

	var list []tessera.DashboardSummary
	fetch := func() error {
		var err error
		list, err = client.ListDashboards(ctx)
		return err
	}
	if opts.JSON {
		err = fetch()
	} else {
		err = ui.Spin(cmd.ErrOrStderr(), "Listing dashboards", fetch)
	}
	if err != nil {
		return err
	}

	if opts.JSON {
		if list == nil {
			list = []tessera.DashboardSummary{}
		}
		return WriteJSONSuccess(cmd.OutOrStdout(), list)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderDashboardTable(dashboardInfos(list)))
	return nil
}

func dashboardInfos(list []tessera.DashboardSummary) []ui.DashboardInfo {
	out := make([]ui.DashboardInfo, len(list))
	for i, d := range list {
		out[i] = ui.DashboardInfo{
			ID:       d.ID.String(),
			Title:    d.Title,
			Category: d.Category,
			Tags:     d.Tags,
		}
	}
	return out
}
