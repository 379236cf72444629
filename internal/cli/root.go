package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dailymotion/tessera-gen/internal/config"
	"github.com/dailymotion/tessera-gen/internal/errors"
	"github.com/dailymotion/tessera-gen/internal/logger"
	"github.com/dailymotion/tessera-gen/internal/ui"
	"github.com/dailymotion/tessera-gen/internal/util"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is read when --config-file is not given.
const DefaultConfigFile = "tessera.yaml"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	ConfigFile string
	TesseraURL string
	Verbose    bool
	NoColor    bool
	Timeout    time.Duration
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "tessera-gen",
		Short: "Generate Tessera dashboards from node lists and graph templates",
		Long: `tessera-gen builds a Tessera dashboard from a config file listing nodes
(hosts, disks, ...) and graph templates, then creates or replaces the
dashboard through the Tessera API.

Node ranges like web-001--010 expand to web-001 ... web-010.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.NoColor || os.Getenv("NO_COLOR") != "" {
				ui.DisableColors()
			}
			logger.SetVerbose(g.Verbose)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.ConfigFile, "config-file", "f", DefaultConfigFile, "dashboard config file (.yaml, .json, .toml, .hcl)")
	pf.StringVarP(&g.TesseraURL, config.KeyTesseraURL, "u", "", "Tessera server URL (env TESSERA_GEN_TESSERA_URL)")
	pf.BoolVarP(&g.Verbose, "verbose", "v", false, "print debug logs")
	pf.BoolVar(&g.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&g.Timeout, config.KeyTimeout, config.DefaultTimeout, "timeout of each API request")

	cmd.AddCommand(
		newPushCmd(g),
		newRenderCmd(g),
		newListCmd(g),
		newInitCmd(g),
		newDoctorCmd(g),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if MachineMode() {
			_ = WriteJSONFromError(os.Stdout, err)
			os.Exit(1)
		}
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	if _, ok := err.(*errors.Error); ok {
		fmt.Fprint(os.Stderr, err.Error())
		return
	}
	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(os.Stderr, "%s Unknown command %q%s\n\n  Run 'tessera-gen --help' to see the available commands.\n",
				ui.SymbolFail, name, util.DidYouMean(name, commandNames(rootCmd)))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.SymbolFail, err)
}

func commandNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}

// isUnknownCommandError checks if the error is from cobra's command or
// flag parsing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "tessera-gen"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
