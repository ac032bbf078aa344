package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"callclean/internal/config"
	"callclean/internal/logging"
	"callclean/internal/pipeline"
	"callclean/internal/telemetry"
)

// Bootstrap configures logging from cfg and compiles the pipeline. Reports
// are written to out (stdout when nil).
func Bootstrap(_ context.Context, cfg config.Config, out io.Writer) (*Engine, error) {
	// 1. logging
	runID := uuid.NewString()
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, RunID: runID})
	log := logging.L()

	// 2. metrics
	m := telemetry.New()

	// 3. pipeline runner
	runner, err := pipeline.Compile(cfg, pipeline.Deps{Metrics: m, Log: log, Out: out})
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Engine{
		cfg:     cfg,
		runID:   runID,
		runner:  runner,
		metrics: m,
		log:     log,
	}, nil
}
