package progress

import (
	"context"

	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

// NewProgressSink picks the sink for the current run. The terminal UI owns
// the screen and non-interactive runs must not draw spinners, so both get
// the no-op sink.
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.TUI || cfg.NonInteractive {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

func (n *NopSink) Info(message string) {}

func (n *NopSink) Error(message string) {}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
