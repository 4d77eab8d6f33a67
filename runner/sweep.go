package runner

import (
	"context"
	"fmt"

	"github.com/drbench/drbench/model"
)

// CaseRunner runs a single analysis case.
type CaseRunner interface {
	RunOneAnalysis(ctx context.Context, c AnalysisCase) error
}

// Sweep is the Cartesian product of targets, sizes and rank counts.
type Sweep struct {
	Targets []model.Target
	Sizes   []int64
	Ranks   []int
}

func (s Sweep) Validate() error {
	if len(s.Targets) == 0 {
		return fmt.Errorf("sweep has no targets")
	}
	if len(s.Sizes) == 0 {
		return fmt.Errorf("sweep has no vector sizes")
	}
	if len(s.Ranks) == 0 {
		return fmt.Errorf("sweep has no rank counts")
	}
	for _, size := range s.Sizes {
		if size <= 0 {
			return fmt.Errorf("vector size must be positive, got %d", size)
		}
	}
	for _, n := range s.Ranks {
		if n <= 0 {
			return fmt.Errorf("rank count must be positive, got %d", n)
		}
	}
	return nil
}

// Cases lists every case, target-major, then size, then ranks.
func (s Sweep) Cases() []AnalysisCase {
	cases := make([]AnalysisCase, 0, len(s.Targets)*len(s.Sizes)*len(s.Ranks))
	for _, t := range s.Targets {
		for _, size := range s.Sizes {
			for _, n := range s.Ranks {
				cases = append(cases, AnalysisCase{Target: t, VectorSize: size, Ranks: n})
			}
		}
	}
	return cases
}

// Run runs every case in order, one at a time, and stops at the first error.
func (s Sweep) Run(ctx context.Context, r CaseRunner) error {
	for _, c := range s.Cases() {
		if err := r.RunOneAnalysis(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
