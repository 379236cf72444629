package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "# bash completion for tessera-gen"},
		{"zsh", "#compdef tessera-gen"},
		{"fish", "complete -c tessera-gen"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, _, err := runCLI(t, "", "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	_, _, err := runCLI(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompletionRequiresShell(t *testing.T) {
	_, _, err := runCLI(t, "", "completion")
	assert.Error(t, err)
}
