package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a message while a call is in flight.
type Spinner struct {
	w        io.Writer
	message  string
	frames   []string
	interval time.Duration

	mu      sync.Mutex
	started bool
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 100 * time.Millisecond,
		stopped:  make(chan struct{}),
	}
}

// Start begins the animation. Calling it again has no effect.
func (s *Spinner) Start() *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return s
	}
	s.started = true
	s.done = make(chan struct{})
	go s.run(s.done)
	return s
}

func (s *Spinner) run(done <-chan struct{}) {
	defer close(s.stopped)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once, and without Start.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	<-s.stopped
	fmt.Fprint(s.w, "\r\033[K")
}
