package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrTemplate,
		ErrTransport,
		ErrInput,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "No nodes to build a dashboard for",
			suggestion: "Add a 'nodes' section or pass --stdin",
		},
		{
			name:       "transport error",
			code:       ErrTransport,
			message:    "PUT /api/dashboard/4 returned 500",
			suggestion: "Check the Tessera server logs",
		},
		{
			name:       "template error",
			code:       ErrTemplate,
			message:    "Query template for 'cpu' is malformed",
			suggestion: "Close every {{ with }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormat(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := WrapWithCode(cause, ErrTransport, "Cannot reach Tessera", "Check --tessera-url")

	out := err.Error()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "✗ Cannot reach Tessera", lines[0])
	assert.Contains(t, out, "  connection refused")
	assert.Contains(t, out, "  Check --tessera-url")

	// cause comes before suggestion
	assert.Less(t, strings.Index(out, "connection refused"), strings.Index(out, "Check --tessera-url"))
}

func TestErrorFormatWithoutOptionalParts(t *testing.T) {
	err := New(ErrConfig, "Bad config", "")
	assert.Equal(t, "✗ Bad config\n", err.Error())
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithCode(sentinel, ErrInput, "read failed", "")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, sentinel, errors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{name: "nil error", err: nil, code: ErrConfig, want: false},
		{name: "matching code", err: New(ErrConfig, "x", ""), code: ErrConfig, want: true},
		{name: "different code", err: New(ErrTransport, "x", ""), code: ErrConfig, want: false},
		{name: "plain error", err: errors.New("plain"), code: ErrConfig, want: false},
		{
			name: "wrapped structured error",
			err:  fmt.Errorf("outer: %w", New(ErrTransport, "inner", "")),
			code: ErrTransport,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}
