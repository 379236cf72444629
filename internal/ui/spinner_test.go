package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Listing dashboards")
	assert.Equal(t, "Listing dashboards", s.label)
	assert.Equal(t, SpinnerPending, s.State())
}

func TestSpinnerStates(t *testing.T) {
	tests := []struct {
		name   string
		finish func(*Spinner)
		state  SpinnerState
		symbol string
	}{
		{"success", (*Spinner).Success, SpinnerSuccess, SymbolComplete},
		{"fail", (*Spinner).Fail, SpinnerFailed, SymbolFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewSpinnerTo(&buf, "Pushing")
			s.Start()
			assert.Equal(t, SpinnerInProgress, s.State())
			tt.finish(s)

			assert.Equal(t, tt.state, s.State())
			assert.Contains(t, buf.String(), tt.symbol)
			assert.Contains(t, buf.String(), "Pushing")
			assert.NotContains(t, buf.String(), "\r", "non-terminal output is not animated")
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinnerTo(&buf, "Test")
	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()
	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestSpin(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Spin(&buf, "Listing", func() error { return nil }))
	assert.Contains(t, buf.String(), SymbolComplete)

	buf.Reset()
	boom := errors.New("boom")
	err := Spin(&buf, "Listing", func() error { return boom })
	assert.Equal(t, boom, err)
	assert.Contains(t, buf.String(), SymbolFail)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.05s", formatDuration(50*time.Millisecond))
	assert.Equal(t, "1.2s", formatDuration(1200*time.Millisecond))
}
