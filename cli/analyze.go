package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/drbench/drbench/model"
	"github.com/drbench/drbench/policy"
	"github.com/drbench/drbench/runner"
	"github.com/urfave/cli/v2"
)

func (a *App) analyze(ctx *cli.Context) error {
	targets, err := model.ParseTargets(ctx.StringSlice("target"))
	if err != nil {
		return err
	}

	ranks, err := runner.RankSpec{
		List:   ctx.IntSlice("nprocs"),
		Min:    ctx.Int("min-ranks"),
		Max:    ctx.Int("max-ranks"),
		Sparse: ctx.Bool("sparse"),
	}.Ranks()
	if err != nil {
		return err
	}

	var pol *policy.Policy
	if path := ctx.Path("policy"); path != "" {
		pol, err = policy.LoadFromFile(path)
		if err != nil {
			return err
		}
		a.logger.Debug().Str("path", path).Int("targets", len(pol.Targets)).Msg("Loaded policy")
	}

	config := runner.AnalysisConfig{
		Prefix:           ctx.String("prefix"),
		Filters:          ctx.StringSlice("filter"),
		Reps:             ctx.Int("reps"),
		Retries:          ctx.Int("retries"),
		Timeout:          ctx.Duration("timeout"),
		DryRun:           ctx.Bool("dry-run"),
		Fork:             !ctx.Bool("no-fork"),
		Launcher:         ctx.String("launcher"),
		MHPBench:         ctx.String("mhp-bench"),
		SHPBench:         ctx.String("shp-bench"),
		WeakScaling:      ctx.Bool("weak-scaling"),
		DeviceMemory:     ctx.Bool("device-memory"),
		DifferentDevices: ctx.Bool("different-devices"),
		Policy:           pol,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	sweep := runner.Sweep{
		Targets: targets,
		Sizes:   ctx.Int64Slice("vec-size"),
		Ranks:   ranks,
	}
	if err := sweep.Validate(); err != nil {
		return err
	}

	var opts []runner.Option
	if a.executor != nil {
		opts = append(opts, runner.WithExecutor(a.executor))
	}
	r := runner.New(a.logger, config, opts...)

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info().
		Strs("targets", ctx.StringSlice("target")).
		Ints("ranks", ranks).
		Int("cases", len(sweep.Cases())).
		Bool("dry_run", config.DryRun).
		Msg("Starting sweep")

	if err := sweep.Run(runCtx, r); err != nil {
		return err
	}

	if config.DryRun || ctx.Bool("no-plot") {
		return nil
	}
	return a.createPlots(config.Prefix, ctx.String("format"))
}
