package bench

import "github.com/urfave/cli/v2"

const (
	DefaultMHPBench = "mhp/mhp-bench"
	DefaultSHPBench = "shp/shp-bench"
)

// MHPBenchFlag returns the flag naming the distributed-memory benchmark.
func MHPBenchFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mhp-bench",
		Usage:   "MHP benchmark program",
		Value:   DefaultMHPBench,
		EnvVars: []string{"DRBENCH_MHP_BENCH"},
	}
}

// SHPBenchFlag returns the flag naming the shared-memory benchmark.
func SHPBenchFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "shp-bench",
		Usage:   "SHP benchmark program",
		Value:   DefaultSHPBench,
		EnvVars: []string{"DRBENCH_SHP_BENCH"},
	}
}

// LauncherFlag returns the flag naming the MPI process launcher.
func LauncherFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "launcher",
		Usage:   "Process launcher for MHP runs",
		Value:   DefaultLauncher,
		EnvVars: []string{"DRBENCH_LAUNCHER"},
	}
}

// FilterFlag returns the benchmark filter flag (multiple filters are OR-joined).
func FilterFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "Benchmark name filter (can be specified multiple times)",
		Value:   cli.NewStringSlice("Stream_"),
	}
}

// RepsFlag returns the repetition count flag.
func RepsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "reps",
		Aliases: []string{"r"},
		Usage:   "Number of repetitions",
		Value:   100,
	}
}
