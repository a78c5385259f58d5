package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roomgen/pkg/pipeline"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates on one terminal line while a level is generated and
// shows the generator's latest progress next to the message.
type Spinner struct {
	out     io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	started bool
	once    sync.Once

	mu       sync.Mutex
	progress pipeline.Progress
	width    int
}

// newSpinner creates a spinner writing to out that stops when ctx is done.
func newSpinner(ctx context.Context, out io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Update records the latest generator progress. It matches the signature of
// pipeline.Options.OnStep.
func (s *Spinner) Update(p pipeline.Progress) {
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
}

// status is the text printed after the frame.
func (s *Spinner) status() string {
	s.mu.Lock()
	p := s.progress
	s.mu.Unlock()

	if p.Steps == 0 {
		return s.message
	}
	parts := []string{
		s.message,
		p.Phase.String(),
		fmt.Sprintf("%d rooms", p.Rooms),
		fmt.Sprintf("%d open", p.OpenEntrances),
	}
	if p.Resets > 0 {
		parts = append(parts, fmt.Sprintf("%d resets", p.Resets))
	}
	return strings.Join(parts, " · ")
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.status())
	s.mu.Lock()
	defer s.mu.Unlock()
	// Pad over the previous line, which may have been longer.
	pad := max(s.width-lipgloss.Width(line), 0)
	fmt.Fprintf(s.out, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = lipgloss.Width(line)
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		if s.started {
			<-s.stopped
		}
		s.cancel()
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// Cancelled reports whether the spinner stopped because its context ended.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}
