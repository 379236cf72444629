package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "tessera-gen"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "tessera-gen"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "push-all" for "tessera-gen"`),
			want: "push-all",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestRootCommandTree(t *testing.T) {
	cmd := newRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"push", "render", "list", "init", "doctor", "version", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config-file", "tessera-url", "verbose", "no-color", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, DefaultConfigFile, cmd.PersistentFlags().Lookup("config-file").DefValue)
}

func TestCommandNames(t *testing.T) {
	names := commandNames(newRootCmd())
	assert.Contains(t, names, "push")
	assert.Contains(t, names, "render")
	assert.NotContains(t, names, "help")
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "", "deploy")
	require.Error(t, err)
	assert.True(t, isUnknownCommandError(err))
	assert.Equal(t, "deploy", extractUnknownCommand(err))
}

func TestStdinArgs(t *testing.T) {
	assert.NoError(t, stdinArgs(nil, nil))
	assert.NoError(t, stdinArgs(nil, []string{"-"}))
	assert.Error(t, stdinArgs(nil, []string{"web-01"}))
	assert.Error(t, stdinArgs(nil, []string{"-", "-"}))
}
