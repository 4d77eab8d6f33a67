package runner

import (
	"fmt"
	"time"

	"github.com/drbench/drbench/bench"
	"github.com/drbench/drbench/model"
	"github.com/drbench/drbench/policy"
)

// DefaultTimeout bounds a single benchmark attempt.
const DefaultTimeout = 300 * time.Second

// AnalysisConfig holds the settings shared by every case of a sweep.
// It is built once per invocation and not modified after Validate.
type AnalysisConfig struct {
	// Result files are named <Prefix>-<token>.json
	Prefix string
	// Benchmark name filters, OR-joined; a policy entry for the target wins
	Filters []string
	Reps    int
	// Number of retries after the first failed attempt
	Retries int
	// Wall-clock limit per attempt
	Timeout time.Duration
	// Log commands without running them
	DryRun bool
	// Pass -launcher=fork to the MPI launcher
	Fork     bool
	Launcher string
	MHPBench string
	SHPBench string

	WeakScaling      bool
	DeviceMemory     bool
	DifferentDevices bool

	// Optional per-target filters and env overrides
	Policy *policy.Policy
}

// Validate checks the configuration and fills in defaults.
func (c *AnalysisConfig) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if c.Reps <= 0 {
		return fmt.Errorf("reps must be positive, got %d", c.Reps)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Launcher == "" {
		c.Launcher = bench.DefaultLauncher
	}
	if c.MHPBench == "" {
		return fmt.Errorf("MHP benchmark program must be set")
	}
	if c.SHPBench == "" {
		return fmt.Errorf("SHP benchmark program must be set")
	}
	return nil
}

// filtersFor returns the benchmark filters for a target.
func (c *AnalysisConfig) filtersFor(t model.Target) []string {
	if filters, ok := c.Policy.FiltersFor(t); ok {
		return filters
	}
	return c.Filters
}

// AnalysisCase is one point of a sweep.
type AnalysisCase struct {
	Target     model.Target
	VectorSize int64
	Ranks      int
}

func (c AnalysisCase) String() string {
	return fmt.Sprintf("%s size=%d ranks=%d", c.Target, c.VectorSize, c.Ranks)
}
