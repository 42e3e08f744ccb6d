package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// spinner animates one status line until stopped or until its context
// ends. All methods are no-ops on a nil *spinner, so callers can skip the
// spinner on non-terminals without extra checks.
type spinner struct {
	w       io.Writer
	ctx     context.Context
	message string

	stopOnce sync.Once
	quit     chan struct{}
	exited   chan struct{}
}

// startSpinner draws message on w with an animated frame.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		w:       w,
		ctx:     ctx,
		message: message,
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *spinner) loop() {
	defer close(s.exited)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			return
		case <-tick.C:
			glyph := string(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
		}
	}
}

// stop ends the animation and blanks the line. Later calls do nothing.
func (s *spinner) stop() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		close(s.quit)
		<-s.exited
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+2))
	})
}

// fail stops the spinner and prints message as an error line.
func (s *spinner) fail(message string) {
	if s == nil {
		return
	}
	s.stop()
	printError("%s", message)
}
