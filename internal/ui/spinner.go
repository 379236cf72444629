package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SpinnerState is where a spinner is in its life cycle.
type SpinnerState int

const (
	SpinnerPending    SpinnerState = iota // created, not started
	SpinnerInProgress                     // between Start and Success or Fail
	SpinnerSuccess
	SpinnerFailed
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

const spinnerTick = 80 * time.Millisecond

// Spinner animates a label while a Tessera request is in flight. Writers
// that are not terminals only get the final status line.
type Spinner struct {
	out      io.Writer
	label    string
	animated bool

	mu      sync.Mutex
	state   SpinnerState
	frame   int
	started time.Time
	width   int // printed width of the current frame
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner returns a pending spinner writing to stderr.
func NewSpinner(label string) *Spinner {
	return NewSpinnerTo(os.Stderr, label)
}

// NewSpinnerTo returns a pending spinner writing to w. It animates only
// when w is a terminal.
func NewSpinnerTo(w io.Writer, label string) *Spinner {
	return &Spinner{out: w, label: label, animated: isTerminalWriter(w)}
}

// Spin runs fn behind a spinner and prints a success or failure line.
func Spin(w io.Writer, label string, fn func() error) error {
	s := NewSpinnerTo(w, label)
	s.Start()
	err := fn()
	if err != nil {
		s.Fail()
	} else {
		s.Success()
	}
	return err
}

// Start is a no-op on a running spinner.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.state = SpinnerInProgress
	s.started = time.Now()
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	if !s.animated {
		close(s.done)
		return
	}
	s.drawFrame()
	go s.loop(s.stop, s.done)
}

// Stop ends the animation and leaves the state alone. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Success stops the spinner and prints a ● line with the elapsed time.
func (s *Spinner) Success() { s.finish(SpinnerSuccess) }

// Fail stops the spinner and prints a ✗ line with the elapsed time.
func (s *Spinner) Fail() { s.finish(SpinnerFailed) }

// State is safe to call from any goroutine.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Spinner) finish(state SpinnerState) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state

	symbol, style := SymbolComplete, SuccessStyle()
	if state == SpinnerFailed {
		symbol, style = SymbolFail, ErrorStyle()
	}
	s.erase()
	fmt.Fprintf(s.out, "%s %s %s\n", style.Render(symbol), s.label,
		MutedStyle().Render(formatDuration(time.Since(s.started))))
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.drawFrame()
			s.mu.Unlock()
		}
	}
}

// drawFrame and erase expect s.mu to be held.
func (s *Spinner) drawFrame() {
	color := GradientColors[(s.frame/2)%len(GradientColors)]
	line := lipgloss.NewStyle().Foreground(color).Render(spinnerFrames[s.frame]) + " " + s.label + "..."
	s.erase()
	fmt.Fprint(s.out, "\r"+line)
	s.width = lipgloss.Width(line)
}

func (s *Spinner) erase() {
	if s.width == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.width = 0
}

// formatDuration prints sub-100ms durations with two decimals, "0.05s".
func formatDuration(d time.Duration) string {
	if d < 100*time.Millisecond {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
