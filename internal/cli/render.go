package cli

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/dashboard"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	MetadataFlags
	Stdin    bool
	Metadata bool
	Output   string
}

// renderedDashboard is what render prints with --metadata.
type renderedDashboard struct {
	Metadata   dashboard.Metadata  `json:"metadata"`
	Definition *dashboard.Document `json:"definition"`
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [-]",
		Short: "Print the dashboard definition without sending it",
		Long: `Build the dashboard described by the config file and print its definition
as JSON. Nothing is sent to Tessera.

Examples:
  tessera-gen render -f system.yaml
  tessera-gen render -f system.yaml --metadata -o dashboard.json`,
		Args: stdinArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Stdin = true
			}
			return runRender(cmd, g, opts)
		},
	}

	AddMetadataFlags(cmd, &opts.MetadataFlags)
	f := cmd.Flags()
	f.BoolVar(&opts.Stdin, "stdin", false, "read node names from standard input")
	f.BoolVar(&opts.Metadata, "metadata", false, "include the metadata record")
	f.StringVarP(&opts.Output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, g *globalFlags, opts *renderOptions) error {
	log := logger.Default()

	f, s, err := loadSettings(g.ConfigFile, cmd.Flags(), log)
	if err != nil {
		return err
	}
	if err := config.ValidateMetadata(s.Metadata, false); err != nil {
		return err
	}

	doc, err := buildDocument(f, s.Metadata, opts.Stdin, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}

	var v any = doc
	if opts.Metadata {
		v = renderedDashboard{Metadata: dashboard.NewMetadata(s.Metadata), Definition: doc}
	}

	if opts.Output == "" {
		return writeJSON(cmd.OutOrStdout(), v)
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Cannot write %s", opts.Output),
			"Check that the directory exists and is writable")
	}
	if err := writeAndClose(out, opts.Output, v); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderBuildSummary(buildSummary(doc)))
	return nil
}

// writeAndClose writes v to w and closes it. A failed close loses the
// flushed data, so its error is returned as well.
func writeAndClose(w io.WriteCloser, name string, v any) error {
	werr := writeJSON(w, v)
	cerr := w.Close()
	if err := cmp.Or(werr, cerr); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Cannot write %s", name),
			"Check the free space and permissions of the target")
	}
	return nil
}
