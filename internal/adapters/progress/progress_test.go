package progress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/treb-viewer/internal/adapters/progress"
	"github.com/trebuchet-org/treb-viewer/internal/domain/config"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

func TestNewProgressSink(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.RuntimeConfig
		wantNop bool
	}{
		{name: "terminal ui", cfg: &config.RuntimeConfig{TUI: true}, wantNop: true},
		{name: "non-interactive", cfg: &config.RuntimeConfig{NonInteractive: true}, wantNop: true},
		{name: "interactive cli", cfg: &config.RuntimeConfig{}, wantNop: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := progress.NewProgressSink(tt.cfg)
			_, isNop := sink.(*progress.NopSink)
			assert.Equal(t, tt.wantNop, isNop)
		})
	}
}

func TestSpinnerProgressReporter_StageSequence(t *testing.T) {
	r := progress.NewSpinnerProgressReporter()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: "checking", Message: "checking", Spinner: true})
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: "fetching", Message: "fetching", Spinner: true})
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: "failed", Message: "boom"})
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: "fetching", Message: "again", Spinner: true})
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: "complete", Message: "done"})
		r.Info("info")
		r.Error("error")
	})
}
