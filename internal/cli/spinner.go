package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a single progress line such as "⠙ Sampling 12/50"
// while a loop of known length runs. It stops when its context is done.
type Spinner struct {
	w     io.Writer
	label string
	total int
	step  atomic.Int64

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}

	mu      sync.Mutex
	started bool
	width   int // visible width of the last line written
}

// newSpinner creates a spinner writing to w that counts up to total.
func newSpinner(ctx context.Context, w io.Writer, label string, total int) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		label:   label,
		total:   total,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(s.line(frame))
		}
	}
}

// Advance marks one more step as done.
func (s *Spinner) Advance() { s.step.Add(1) }

// line renders the progress line for the given animation frame.
func (s *Spinner) line(frame int) string {
	icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
	progress := fmt.Sprintf("%s %d/%d", s.label, s.step.Load(), s.total)
	return icon + " " + styleDim.Render(progress)
}

func (s *Spinner) draw(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+line)
	s.width = lipgloss.Width(line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
		s.width = 0
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and before Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
