package bench

// args.go contains utilities for building the arguments understood by both
// benchmark programs.

import (
	"fmt"
	"strings"
)

// Options contains the arguments common to the MHP and SHP benchmarks.
type Options struct {
	VectorSize       int64    // Problem size (--vector-size)
	Reps             int      // Repetitions per benchmark (--reps)
	OutputPath       string   // JSON result file (--benchmark_out)
	Filters          []string // Benchmark name filters, OR-joined
	WeakScaling      bool     // Grow the problem with the rank count
	DeviceMemory     bool     // Allocate in device memory
	DifferentDevices bool     // Require every rank to use a distinct device
}

// JoinFilters ORs filters into a single benchmark_filter regex.
func JoinFilters(filters []string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, "|")
}

// BuildArgs builds the benchmark arguments shared by both programs.
func BuildArgs(opts Options) []string {
	args := []string{
		"--vector-size", fmt.Sprintf("%d", opts.VectorSize),
		"--reps", fmt.Sprintf("%d", opts.Reps),
		"--benchmark_out=" + opts.OutputPath,
		"--benchmark_out_format=json",
	}

	if filter := JoinFilters(opts.Filters); filter != "" {
		args = append(args, "--benchmark_filter="+filter)
	}
	if opts.WeakScaling {
		args = append(args, "--weak-scaling")
	}
	if opts.DeviceMemory {
		args = append(args, "--device-memory")
	}
	if opts.DifferentDevices {
		args = append(args, "--different-devices")
	}

	return args
}
