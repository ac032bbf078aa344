package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"callclean/internal/config"
	"callclean/internal/pipeline"
	"callclean/internal/table"
	"callclean/internal/telemetry"
)

type Engine struct {
	cfg     config.Config
	runID   string
	runner  *pipeline.Runner
	metrics *telemetry.Metrics
	log     *slog.Logger
}

func (e *Engine) RunID() string { return e.runID }

// Run cleans the configured input once. Metrics are written to the
// textfile, when one is configured, whether or not the run succeeded.
func (e *Engine) Run(ctx context.Context) (*table.Table, error) {
	t, err := e.runner.Run(ctx, e.cfg.Source.Path)
	if cerr := e.runner.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close sinks: %w", cerr)
	}
	if path := e.cfg.Metrics.Textfile; path != "" {
		if werr := e.metrics.WriteTextfile(path); werr != nil {
			e.log.Warn("metrics textfile not written", "path", path, "err", werr)
		}
	}
	if err != nil {
		e.log.Error("run failed", "kind", kind(err), "err", err)
		return nil, err
	}
	return t, nil
}

func kind(err error) string {
	switch {
	case errors.Is(err, table.ErrIO):
		return "io"
	case errors.Is(err, table.ErrSchema):
		return "schema"
	case errors.Is(err, table.ErrCoercion):
		return "coercion"
	default:
		return "other"
	}
}
