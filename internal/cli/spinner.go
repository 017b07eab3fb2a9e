package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazer/pkg/observability"
)

var spinnerFrames = []string{"▖", "▘", "▝", "▗"}

const spinnerInterval = 100 * time.Millisecond

// Spinner draws a one-line progress indicator on w until Stop is called or
// the parent context ends. The message may change while it spins.
type Spinner struct {
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool

	mu      sync.Mutex
	message string
	width   int
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins drawing. It must be called at most once.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the frame.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	pad := ""
	if w := lipgloss.Width(line); w < s.width {
		pad = strings.Repeat(" ", s.width-w)
	} else {
		s.width = w
	}
	fmt.Fprintf(s.w, "\r%s%s", line, pad)
}

// Stop halts drawing and clears the line. Calling it again is a no-op.
func (s *Spinner) Stop() {
	s.cancel()
	if s.started {
		<-s.stopped
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.width = 0
	}
}

// Cancelled reports whether the parent context ended.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// =============================================================================
// Pipeline Stages
// =============================================================================

// stageReporter shows the running pipeline stage on a spinner and logs
// each finished stage at debug level.
type stageReporter struct {
	observability.NoopPipelineHooks
	spin   *Spinner
	logger *log.Logger
}

// reportStages installs a stageReporter as the pipeline hooks and returns
// a func that restores the previous hooks.
func reportStages(spin *Spinner, logger *log.Logger) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageReporter{spin: spin, logger: logger})
	return func() { observability.SetPipelineHooks(prev) }
}

func (r stageReporter) OnLoadStart(_ context.Context, source string) {
	r.spin.SetMessage("Loading " + filepath.Base(source))
}

func (r stageReporter) OnLoadComplete(_ context.Context, source string, cells int, d time.Duration, err error) {
	if err == nil {
		r.logger.Debug("loaded snapshot", "source", source, "cells", cells, "duration", d)
	}
}

func (r stageReporter) OnGeometryStart(_ context.Context, topology string, cells int) {
	r.spin.SetMessage(fmt.Sprintf("Computing %s geometry for %d cells", topology, cells))
}

func (r stageReporter) OnGeometryComplete(_ context.Context, topology string, d time.Duration, err error) {
	if err == nil {
		r.logger.Debug("computed geometry", "topology", topology, "duration", d)
	}
}

func (r stageReporter) OnRenderStart(_ context.Context, formats []string) {
	r.spin.SetMessage("Rendering " + strings.Join(formats, ", "))
}

func (r stageReporter) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err == nil {
		r.logger.Debug("rendered", "formats", formats, "duration", d)
	}
}
