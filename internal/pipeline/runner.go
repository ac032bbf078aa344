package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"callclean/internal/logging"
	"callclean/internal/table"
	"callclean/internal/telemetry"
	"callclean/internal/transform"
	"callclean/sink"
	"callclean/source"
)

const (
	TitleOriginal = "Original"
	TitleCleaned  = "Cleaned"
)

type Runner struct {
	source source.Adapter
	steps  []transform.Step
	sinks  []sink.Adapter

	metrics *telemetry.Metrics
	log     *slog.Logger
}

func NewRunner(m *telemetry.Metrics, log *slog.Logger) *Runner {
	if m == nil {
		m = telemetry.New()
	}
	if log == nil {
		log = logging.L()
	}
	return &Runner{metrics: m, log: log}
}

func (r *Runner) SetSource(s source.Adapter)  { r.source = s }
func (r *Runner) AddStep(s ...transform.Step) { r.steps = append(r.steps, s...) }
func (r *Runner) AddSink(s sink.Adapter)      { r.sinks = append(r.sinks, s) }
func (r *Runner) Metrics() *telemetry.Metrics { return r.metrics }

/*──────── reporting ───────*/
func (r *Runner) report(ctx context.Context, title string, t *table.Table) error {
	for _, s := range r.sinks {
		if err := s.Report(ctx, title, t); err != nil {
			return fmt.Errorf("report %s: %w", title, err)
		}
	}
	return nil
}

// Run loads path, reports it, applies every step in order and reports the
// result. The first error stops the run; the table is returned only on
// success.
func (r *Runner) Run(ctx context.Context, path string) (*table.Table, error) {
	if r.source == nil {
		return nil, errors.New("runner: no source configured")
	}
	t, err := r.source.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	r.metrics.RowsLoaded.Add(float64(t.Len()))
	r.log.Info("table loaded", "path", path, "rows", t.Len(), "columns", t.Width())

	if err := r.report(ctx, TitleOriginal, t); err != nil {
		return nil, err
	}

	for _, s := range r.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		n, err := s.Apply(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", s.Name(), err)
		}
		took := time.Since(start)
		r.metrics.ObserveStep(s.Name(), n, took)
		r.log.Debug("step applied", "step", s.Name(), "changed", n, "rows", t.Len(), "took", took)
	}

	r.metrics.RowsEmitted.Add(float64(t.Len()))
	if err := r.report(ctx, TitleCleaned, t); err != nil {
		return nil, err
	}
	r.log.Info("table cleaned", "rows", t.Len(), "columns", t.Width())
	return t, nil
}

// Close closes every sink and returns the first error.
func (r *Runner) Close() error {
	var first error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
