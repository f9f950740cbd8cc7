package progress

import (
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// NewSink picks the sink for the current run. Structured output and
// non-interactive runs get no progress rendering.
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output == config.OutputYAML {
		return usecase.NopProgress{}
	}
	return NewSpinnerSink()
}
