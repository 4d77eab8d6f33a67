package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/drbench/drbench/bench"
	"github.com/drbench/drbench/charts"
	"github.com/drbench/drbench/runner"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "drbench"

const (
	defaultPrefix  = "dr-bench"
	defaultEnvFile = ".env"
	verboseEnv     = "DRBENCH_VERBOSE"
)

type App struct {
	logger zerolog.Logger
	cli    *cli.App

	// replaces the process executor, used by tests
	executor runner.Executor
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Run and plot distributed ranges benchmark sweeps",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "verbose",
					Usage:   "Enable verbose (debug) logging",
					EnvVars: []string{verboseEnv},
				},
				&cli.StringFlag{
					Name:  "env-file",
					Usage: "Load environment variables from this file before reading flags",
					Value: defaultEnvFile,
				},
			},
		},
	}
	app.cli.Before = app.before

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "analyze",
		Usage:  "Run a benchmark sweep and plot the results",
		Action: app.analyze,
		Flags: []cli.Flag{
			prefixFlag(),
			&cli.StringSliceFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Target to run (can be specified multiple times, see 'targets')",
				Value:   cli.NewStringSlice("mhp_direct_cpu"),
				EnvVars: []string{"DRBENCH_TARGET"},
			},
			&cli.Int64SliceFlag{
				Name:    "vec-size",
				Aliases: []string{"s"},
				Usage:   "Vector size (can be specified multiple times)",
				Value:   cli.NewInt64Slice(1000000),
			},
			&cli.IntSliceFlag{
				Name:    "nprocs",
				Aliases: []string{"n"},
				Usage:   "Number of ranks (can be specified multiple times)",
			},
			&cli.IntFlag{
				Name:  "min-ranks",
				Usage: "Smallest rank count of a range (requires --max-ranks)",
			},
			&cli.IntFlag{
				Name:  "max-ranks",
				Usage: "Largest rank count of a range",
			},
			&cli.BoolFlag{
				Name:  "sparse",
				Usage: "Use 1, 2, 4, 8, 12, 16, ... up to --max-ranks",
			},
			bench.RepsFlag(),
			bench.FilterFlag(),
			&cli.IntFlag{
				Name:    "retries",
				Usage:   "Number of times a failed run is retried",
				EnvVars: []string{"DRBENCH_RETRIES"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Time limit of a single run",
				Value:   runner.DefaultTimeout,
				EnvVars: []string{"DRBENCH_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Print the commands instead of running them",
			},
			&cli.BoolFlag{
				Name:  "no-fork",
				Usage: "Do not pass -launcher=fork to the launcher",
			},
			bench.MHPBenchFlag(),
			bench.SHPBenchFlag(),
			bench.LauncherFlag(),
			&cli.BoolFlag{
				Name:  "weak-scaling",
				Usage: "Scale the vector size with the number of ranks",
			},
			&cli.BoolFlag{
				Name:  "device-memory",
				Usage: "Allocate data in device memory",
			},
			&cli.BoolFlag{
				Name:  "different-devices",
				Usage: "Place every rank on a different device",
			},
			&cli.PathFlag{
				Name:    "policy",
				Usage:   "YAML file with per-target filters and environment",
				EnvVars: []string{"DRBENCH_POLICY"},
			},
			&cli.BoolFlag{
				Name:  "no-plot",
				Usage: "Do not plot after the sweep",
			},
			formatFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "plot",
		Usage:  "Plot the result files of a prefix",
		Action: app.plot,
		Flags: []cli.Flag{
			prefixFlag(),
			formatFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List the result files of a prefix",
		Action: app.list,
		Flags: []cli.Flag{
			prefixFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "clean",
		Usage:  "Remove the result, CSV and image files of a prefix",
		Action: app.clean,
		Flags: []cli.Flag{
			prefixFlag(),
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Only list the files that would be removed",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "targets",
		Usage:  "List the supported targets",
		Action: app.targets,
	})
	return app
}

func prefixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "prefix",
		Usage:   "Prefix of the result files",
		Value:   defaultPrefix,
		EnvVars: []string{"DRBENCH_PREFIX"},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Usage:   fmt.Sprintf("Image format of the plots (%v)", charts.Formats),
		Value:   charts.DefaultFormat,
		EnvVars: []string{"DRBENCH_FORMAT"},
	}
}

func (a *App) before(ctx *cli.Context) error {
	loaded, err := loadEnvFile(ctx)
	if err != nil {
		return err
	}

	// Global flags are parsed before the env file is loaded, so a verbose
	// setting from the file is read here
	verbose := ctx.Bool("verbose")
	if !ctx.IsSet("verbose") {
		if v, err := strconv.ParseBool(os.Getenv(verboseEnv)); err == nil {
			verbose = v
		}
	}
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if loaded != "" {
		a.logger.Debug().Str("file", loaded).Msg("Loaded env file")
	}
	return nil
}

// loadEnvFile returns the path of the loaded file, or "" when none was.
func loadEnvFile(ctx *cli.Context) (string, error) {
	envFile := ctx.String("env-file")
	if envFile == "" {
		return "", nil
	}
	if err := godotenv.Load(envFile); err != nil {
		// a missing default file is fine, an explicitly given one is not
		if errors.Is(err, fs.ErrNotExist) && !ctx.IsSet("env-file") {
			return "", nil
		}
		return "", fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	return envFile, nil
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		if len(commit) > 8 {
			commit = commit[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	}
}
