package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wayfarer-games/sitegen/internal/logfields"
	"github.com/wayfarer-games/sitegen/internal/metrics"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadManifest  StageName = "load_manifest"
	StageResolvePosts  StageName = "resolve_posts"
	StageSortPosts     StageName = "sort_posts"
	StageEmitAssets    StageName = "emit_assets"
	StageWriteOutputs  StageName = "write_outputs"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// defaultStages is the build sequence.
func defaultStages() []StageDef {
	return []StageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StageLoadManifest, stageLoadManifest},
		{StageResolvePosts, stageResolvePosts},
		{StageSortPosts, stageSortPosts},
		{StageEmitAssets, stageEmitAssets},
		{StageWriteOutputs, stageWriteOutputs},
	}
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
			bs.logger.Debug("Stage completed", logfields.Stage(string(st.Name)), logfields.DurationMS(millis(dur)))
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		bs.recorder.IncStageResult(string(st.Name), metrics.ResultFromError(se, se.Kind == StageErrorCanceled))
		bs.logger.Error("Stage failed",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(millis(dur)),
			slog.String("kind", string(se.Kind)),
			logfields.Error(se.Err))
		return se
	}
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
