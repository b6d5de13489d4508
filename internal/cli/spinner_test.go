package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLine(t *testing.T) {
	s := newSpinner(context.Background(), io.Discard, "Sampling", 5)
	s.Advance()
	s.Advance()

	tests := []struct {
		frame int
		icon  string
	}{
		{0, spinnerFrames[0]},
		{1, spinnerFrames[1]},
		{len(spinnerFrames), spinnerFrames[0]},
	}
	for _, tt := range tests {
		line := s.line(tt.frame)
		if !strings.Contains(line, tt.icon) {
			t.Errorf("line(%d) = %q, want icon %q", tt.frame, line, tt.icon)
		}
		if !strings.Contains(line, "Sampling 2/5") {
			t.Errorf("line(%d) = %q, want progress 2/5", tt.frame, line)
		}
	}
}

func TestSpinnerWritesProgressAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Sampling", 3)
	s.Start()
	for range 3 {
		s.Advance()
	}
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Sampling 3/3") {
		t.Errorf("output %q does not show the final step", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not end by clearing the line", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, io.Discard, "Sampling", 10)
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after its context was cancelled")
	}
}

func TestSpinnerStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s := newSpinner(context.Background(), io.Discard, "Sampling", 1)
		s.Start()
		s.Stop()
		s.Stop()
	})

	t.Run("before start", func(t *testing.T) {
		s := newSpinner(context.Background(), io.Discard, "Sampling", 1)
		done := make(chan struct{})
		go func() {
			s.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Stop blocked on a spinner that never started")
		}
	})
}
