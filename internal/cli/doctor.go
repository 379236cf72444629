package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/doctor"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/tessera"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/cobra"
)

type doctorOptions struct {
	JSON    bool
	Offline bool
}

// DoctorOutput is the --json payload of doctor.
type DoctorOutput struct {
	Categories []doctor.Section `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

type SummaryOutput struct {
	doctor.Tally
	AllClear bool `json:"all_clear"`
}

func newDoctorCmd(g *globalFlags) *cobra.Command {
	opts := &doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the config file and the Tessera server",
		Long: `Run diagnostic checks before a push: the config file loads, node ranges
expand, queries only use known placeholders, the server answers and the
dashboard to replace exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			machineMode = opts.JSON
			return runDoctor(cmd, g, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "skip the server checks")

	return cmd
}

func runDoctor(cmd *cobra.Command, g *globalFlags, opts *doctorOptions) error {
	// Load errors are reported by the schema check.
	f, _ := config.LoadWithLogger(g.ConfigFile, logger.Noop())
	s, err := config.Resolve(f, cmd.Flags())
	if err != nil {
		return err
	}

	checks := collectChecks(g.ConfigFile, s, opts.Offline)
	results := doctor.RunAll(checks)

	if opts.JSON {
		return WriteJSONSuccess(cmd.OutOrStdout(), doctorOutput(checks, results))
	}
	outputDoctorText(cmd.OutOrStdout(), checks, results)
	return nil
}

// collectChecks gathers the checks. The server checks need a usable URL.
func collectChecks(path string, s *config.Settings, offline bool) []doctor.Check {
	schema := &doctor.ConfigSchemaCheck{Path: path}
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{Path: path},
		schema,
		&doctor.MetadataCheck{Metadata: s.Metadata},
		&doctor.NodesCheck{Schema: schema},
		&doctor.PlaceholderCheck{Schema: schema},
		&doctor.BuildCheck{Schema: schema, Layout: s.Metadata.Layout},
	}

	if offline || config.ValidateMetadata(s.Metadata, true) != nil {
		return checks
	}
	server := &doctor.ServerCheck{
		URL: s.Metadata.TesseraURL,
		Client: tessera.NewClient(tessera.Config{
			BaseURL:   s.Metadata.TesseraURL,
			Timeout:   s.Timeout,
			Log:       logger.Default(),
			UserAgent: userAgent(),
		}),
		Timeout: s.Timeout,
	}
	return append(checks, server, &doctor.DashboardCheck{DashboardID: s.Metadata.DashboardID, Server: server})
}

func doctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	tally := doctor.Count(results)
	return DoctorOutput{
		Categories: doctor.Sections(checks, results),
		Summary:    SummaryOutput{Tally: tally, AllClear: tally.Issues() == 0},
	}
}

func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	bold := ui.BoldStyle()

	fmt.Fprintf(w, "\n%s\n\n", bold.Render("tessera-gen diagnostic report"))
	for _, sec := range doctor.Sections(checks, results) {
		fmt.Fprintln(w, bold.Render(sec.Category))
		for _, r := range sec.Results {
			renderCheckResult(w, r)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("━", 60))

	tally := doctor.Count(results)
	symbol, style := ui.SymbolSuccess, ui.SuccessStyle()
	if tally.Issues() > 0 {
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}
	fmt.Fprintf(w, "%s %s\n\n", style.Render(symbol), tally)
}

func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	symbol, style := ui.SymbolSuccess, ui.SuccessStyle()
	switch result.Status {
	case doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
