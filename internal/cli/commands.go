package cli

import (
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       (*cobra.Command).GenBashCompletion,
	"zsh":        (*cobra.Command).GenZshCompletion,
	"powershell": (*cobra.Command).GenPowerShellCompletion,
	"fish": func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	},
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

  tessera-gen completion bash > /etc/bash_completion.d/tessera-gen
  tessera-gen completion zsh > "${fpath[1]}/_tessera-gen"
  tessera-gen completion fish > ~/.config/fish/completions/tessera-gen.fish`,
		ValidArgs: slices.Sorted(maps.Keys(completionGenerators)),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
