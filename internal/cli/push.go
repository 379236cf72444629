package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/dashboard"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/tessera"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/cobra"
)

type pushOptions struct {
	MetadataFlags
	Create bool
	Stdin  bool
	DryRun bool
	Pick   bool
	Yes    bool
	JSON   bool
}

// pushResult is the --json payload of a push.
type pushResult struct {
	ID       string `json:"id"`
	Created  bool   `json:"created"`
	DryRun   bool   `json:"dry_run"`
	ViewURL  string `json:"view_url,omitempty"`
	Sections int    `json:"sections"`
	Graphs   int    `json:"graphs"`
	Queries  int    `json:"queries"`
}

func newPushCmd(g *globalFlags) *cobra.Command {
	opts := &pushOptions{}

	cmd := &cobra.Command{
		Use:   "push [-]",
		Short: "Build the dashboard and create or replace it on Tessera",
		Long: `Build the dashboard described by the config file and send it to Tessera.

Without --dashboard-id (or a dashboard-id in the config) a new dashboard is
created. Otherwise the existing dashboard's metadata and definition are
replaced.

When the config has no nodes section, pass --stdin (or a trailing '-') and
feed one line of space-separated node names on standard input.

Examples:
  tessera-gen push -f system.yaml --create
  tessera-gen push -f system.yaml -d 12 --title "Web farm"
  echo "web-01 web-02" | tessera-gen push -f disks.yaml -c -
  tessera-gen push -f system.yaml --pick`,
		Args: stdinArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Stdin = true
			}
			machineMode = opts.JSON
			return runPush(cmd, g, opts)
		},
	}

	AddMetadataFlags(cmd, &opts.MetadataFlags)
	f := cmd.Flags()
	f.BoolVarP(&opts.Create, "create", "c", false, "create a new dashboard")
	f.BoolVar(&opts.Stdin, "stdin", false, "read node names from standard input")
	f.BoolVar(&opts.DryRun, config.KeyDryRun, false, "print the API requests instead of sending them")
	f.BoolVar(&opts.Pick, "pick", false, "choose the dashboard to replace interactively")
	f.BoolVarP(&opts.Yes, "yes", "y", false, "replace an existing dashboard without asking")
	f.BoolVar(&opts.JSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("create", config.KeyDashboardID, "pick")

	return cmd
}

func runPush(cmd *cobra.Command, g *globalFlags, opts *pushOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := logger.Default()

	f, s, err := loadSettings(g.ConfigFile, cmd.Flags(), log)
	if err != nil {
		return err
	}
	meta := s.Metadata
	if opts.Create {
		meta.DashboardID = ""
	}
	if err := config.ValidateMetadata(meta, !s.DryRun); err != nil {
		return err
	}

	dumpTo := out
	if machineMode {
		dumpTo = errOut
	}
	client := tessera.NewClient(tessera.Config{
		BaseURL:   meta.TesseraURL,
		Timeout:   s.Timeout,
		DryRun:    s.DryRun,
		Out:       dumpTo,
		Log:       log,
		UserAgent: userAgent(),
	})

	if opts.Pick {
		id, err := pickDashboard(ctx, cmd, client, opts.Stdin)
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintln(errOut, ui.MutedStyle().Render("No dashboard selected"))
			return nil
		}
		meta.DashboardID = id
	}

	doc, err := buildDocument(f, meta, opts.Stdin, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}

	if !meta.IsCreate() && !s.DryRun && !opts.Yes && !machineMode && isInteractive(cmd.InOrStdin()) {
		ok, err := confirmReplace(meta)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(errOut, ui.MutedStyle().Render("Aborted"))
			return nil
		}
	}

	md := dashboard.NewMetadata(meta)
	var res tessera.Result
	publish := func() error {
		var err error
		res, err = tessera.Publish(ctx, client, md, doc)
		return err
	}
	if s.DryRun || machineMode {
		err = publish()
	} else {
		err = ui.Spin(errOut, "Pushing "+meta.Title, publish)
	}
	if err != nil {
		return err
	}

	summary := buildSummary(doc)
	viewURL := ""
	if !s.DryRun {
		viewURL = meta.TesseraURL + dashboard.ViewPath(res.ID, meta.Title)
	}

	if machineMode {
		return WriteJSONSuccess(out, pushResult{
			ID:       res.ID,
			Created:  res.Created,
			DryRun:   s.DryRun,
			ViewURL:  viewURL,
			Sections: summary.Sections,
			Graphs:   summary.Cells,
			Queries:  summary.Queries,
		})
	}
	fmt.Fprintln(errOut, ui.RenderBuildSummary(summary))
	fmt.Fprintln(errOut, ui.RenderPushResult(res.ID, viewURL, res.Created, s.DryRun))
	return nil
}

// pickDashboard lists the server's dashboards and lets the user choose
// one. An empty id means the user cancelled.
func pickDashboard(ctx context.Context, cmd *cobra.Command, client *tessera.Client, nodesFromStdin bool) (string, error) {
	if nodesFromStdin || !isInteractive(cmd.InOrStdin()) {
		return "", errors.New(errors.ErrInput,
			"--pick needs an interactive terminal",
			"Pass the dashboard with --dashboard-id instead")
	}

	var list []tessera.DashboardSummary
	err := ui.Spin(cmd.ErrOrStderr(), "Listing dashboards", func() error {
		var err error
		list, err = client.ListDashboards(ctx)
		return err
	})
	if err != nil {
		return "", err
	}

	picked, err := ui.PickDashboard(dashboardInfos(list))
	if err != nil || picked == nil {
		return "", err
	}
	return picked.ID, nil
}

func confirmReplace(meta config.Metadata) (bool, error) {
	replace := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Replace dashboard %s with %q?", meta.DashboardID, meta.Title)).
				Description("Its current sections and graphs will be overwritten.").
				Affirmative("Replace").
				Negative("Cancel").
				Value(&replace),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to get confirmation",
			"Use --yes to replace without asking")
	}
	return replace, nil
}
