package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/observability"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options,
// since every run builds its own generator.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	g, err := opts.NewGenerator(level.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, opts.Seed, g.Library().Len())
	genStart := time.Now()
	lvl, err := r.Drive(ctx, g, opts)
	result.Stats.GenerateTime = time.Since(genStart)
	hooks.OnGenerateComplete(ctx, len(lvl.Rooms), g.Resets(), result.Stats.GenerateTime, err)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Level = lvl
	result.Stats.Rooms = len(lvl.Rooms)
	result.Stats.SpawnRooms = len(lvl.SpawnRooms)
	result.Stats.Steps = lvl.Steps
	result.Stats.Resets = lvl.Resets

	r.Logger.Info("generated level",
		"run_id", lvl.RunID,
		"rooms", result.Stats.Rooms,
		"resets", result.Stats.Resets,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(lvl, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Drive steps g until it is Done or Failed. It stops early when ctx is
// cancelled or when g has reset more than opts.MaxResets times (if set),
// and waits opts.ResetDelay after each reset.
func (r *Runner) Drive(ctx context.Context, g *level.Generator, opts Options) (level.Result, error) {
	r.applyLogger(&opts)
	hooks := observability.Generation()

	for {
		if err := ctx.Err(); err != nil {
			return level.Result{}, err
		}

		status, err := g.Step()
		if opts.OnStep != nil {
			opts.OnStep(ProgressOf(g))
		}
		switch status {
		case level.Done:
			res, _ := g.Result()
			return res, nil
		case level.Failed:
			return level.Result{}, err
		}

		if !g.JustReset() {
			continue
		}
		hooks.OnReset(ctx, g.Resets())
		opts.Logger.Debug("rejected attempt", "resets", g.Resets(), "steps", g.Steps())

		if opts.MaxResets > 0 && g.Resets() > opts.MaxResets {
			return level.Result{}, errors.New(errors.ErrCodeResetLimit,
				"no acceptable level after %d resets", opts.MaxResets)
		}
		if opts.ResetDelay > 0 {
			select {
			case <-ctx.Done():
				return level.Result{}, ctx.Err()
			case <-time.After(opts.ResetDelay):
			}
		}
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
