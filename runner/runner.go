// Package runner turns a sweep of analysis cases into benchmark invocations
// and runs them one at a time with a bounded number of retries.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/drbench/drbench/bench"
	"github.com/drbench/drbench/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRetriesExhausted is returned when every attempt of a case failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Runner runs analysis cases.
type Runner struct {
	logger   zerolog.Logger
	config   AnalysisConfig
	executor Executor
	newToken func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor replaces the process executor.
func WithExecutor(e Executor) Option {
	return func(r *Runner) {
		r.executor = e
	}
}

// WithTokenSource replaces the generator of result file tokens.
func WithTokenSource(f func() string) Option {
	return func(r *Runner) {
		r.newToken = f
	}
}

// New creates a Runner. The config must have been validated.
func New(logger zerolog.Logger, config AnalysisConfig, opts ...Option) *Runner {
	r := &Runner{
		logger:   logger,
		config:   config,
		executor: &ProcessExecutor{},
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OutputName returns a fresh result file name for the configured prefix.
func (r *Runner) OutputName() string {
	return fmt.Sprintf("%s-%s.json", r.config.Prefix, r.newToken())
}

// BuildCommand builds the invocation for one case, with a fresh output file.
func (r *Runner) BuildCommand(c AnalysisCase) bench.Command {
	opts := bench.Options{
		VectorSize:       c.VectorSize,
		Reps:             r.config.Reps,
		OutputPath:       r.OutputName(),
		Filters:          r.config.filtersFor(c.Target),
		WeakScaling:      r.config.WeakScaling,
		DeviceMemory:     r.config.DeviceMemory,
		DifferentDevices: r.config.DifferentDevices,
	}

	var cmd bench.Command
	switch c.Target.Model {
	case model.ModelMHP:
		cmd = bench.BuildMHPCommand(bench.MHPOptions{
			Launcher: r.config.Launcher,
			Fork:     r.config.Fork,
			Ranks:    c.Ranks,
			Binary:   r.config.MHPBench,
			Target:   c.Target,
			Bench:    opts,
		})
	case model.ModelSHP:
		cmd = bench.BuildSHPCommand(bench.SHPOptions{
			Devices: c.Ranks,
			Binary:  r.config.SHPBench,
			Target:  c.Target,
			Bench:   opts,
		})
	}

	return cmd.WithEnv(r.config.Policy.EnvFor(c.Target))
}

// RunOneAnalysis runs a single case. It returns nil once an attempt exits
// with status 0. Timeouts and nonzero exits are retried up to the configured
// retry budget; after that an error wrapping ErrRetriesExhausted is returned.
// In dry-run mode the command is only logged.
func (r *Runner) RunOneAnalysis(ctx context.Context, c AnalysisCase) error {
	cmd := r.BuildCommand(c)

	logger := r.logger.With().
		Str("target", c.Target.String()).
		Int64("size", c.VectorSize).
		Int("ranks", c.Ranks).
		Logger()

	if r.config.DryRun {
		logger.Info().Str("command", cmd.String()).Msg("Dry run, not executing")
		return nil
	}

	logger.Info().Str("command", cmd.String()).Msg("Running benchmark")

	attempt := 0
	run := func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
		usage, err := r.executor.Execute(attemptCtx, cmd)
		cancel()

		logger.Debug().
			Int("attempt", attempt).
			Dur("wall", usage.Wall).
			Dur("user", usage.User).
			Dur("system", usage.System).
			Msg("Benchmark resource usage")

		if err == nil {
			logger.Info().Int("attempt", attempt).Dur("wall", usage.Wall).Msg("Benchmark completed")
			return nil
		}

		// Interrupted sweeps are not retried
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		var exitErr *ExitError
		switch {
		case errors.Is(err, ErrTimeout):
			logger.Warn().
				Int("attempt", attempt).
				Dur("timeout", r.config.Timeout).
				Msg("Benchmark timed out")
		case errors.As(err, &exitErr):
			logger.Warn().
				Int("attempt", attempt).
				Int("exit_code", exitErr.Code).
				Str("stderr", exitErr.Stderr).
				Msg("Benchmark failed")
		default:
			logger.Warn().Err(err).Int("attempt", attempt).Msg("Benchmark could not be executed")
		}
		return err
	}

	// Retries follow immediately, at most Retries after the first attempt
	schedule := backoff.WithContext(
		backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(r.config.Retries)),
		ctx,
	)
	err := backoff.RetryNotify(run, schedule, func(error, time.Duration) {
		logger.Debug().Int("next_attempt", attempt+1).Msg("Retrying benchmark")
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", c, ctx.Err())
	}

	logger.Error().Int("attempts", attempt).Msg("Giving up on benchmark")
	return fmt.Errorf("%s: %w after %d attempts: %w", c, ErrRetriesExhausted, attempt, err)
}
