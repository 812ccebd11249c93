package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// StageEvent captures lightweight execution telemetry for one pipeline
// stage (normalize, feasibility expansion, model build, solve, ...).
type StageEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// PipelineObserver receives pipeline stage execution events.
type PipelineObserver interface {
	ObserveStage(ctx context.Context, event StageEvent)
}

// NoopPipelineObserver ignores all events.
type NoopPipelineObserver struct{}

func (NoopPipelineObserver) ObserveStage(context.Context, StageEvent) {}

type logPipelineObserver struct {
	logger *slog.Logger
}

// NewLogPipelineObserver writes pipeline stage events to the provided
// writer as structured log lines.
func NewLogPipelineObserver(w io.Writer) PipelineObserver {
	if w == nil {
		return NoopPipelineObserver{}
	}
	return &logPipelineObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logPipelineObserver) ObserveStage(ctx context.Context, event StageEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"stage", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "pipeline_stage", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "pipeline_stage", attrs...)
}

// runIDObserver stamps every event with the correlation id of the
// Optimize call that produced it, so stage logs from concurrent runs (or
// from one run's many stages) can be grepped back together.
type runIDObserver struct {
	inner PipelineObserver
	runID string
}

// withRunID wraps obs so every event it forwards carries a "run_id"
// field.
func withRunID(obs PipelineObserver, runID string) PipelineObserver {
	return &runIDObserver{inner: obs, runID: runID}
}

func (o *runIDObserver) ObserveStage(ctx context.Context, event StageEvent) {
	fields := make(map[string]any, len(event.Fields)+1)
	for k, v := range event.Fields {
		fields[k] = v
	}
	fields["run_id"] = o.runID
	event.Fields = fields
	o.inner.ObserveStage(ctx, event)
}

func pipelineObserverOrNoop(observers []PipelineObserver) PipelineObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopPipelineObserver{}
}

// runStage wraps a pipeline stage with a StageEvent observation.
func runStage(ctx context.Context, obs PipelineObserver, name string, fields map[string]any, fn func() error) error {
	started := time.Now()
	err := fn()
	obs.ObserveStage(ctx, StageEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
	return err
}
