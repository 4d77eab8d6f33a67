package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/drbench/drbench/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	cases  []AnalysisCase
	failAt int // 1-based, 0 = never
}

func (r *recordingRunner) RunOneAnalysis(_ context.Context, c AnalysisCase) error {
	r.cases = append(r.cases, c)
	if len(r.cases) == r.failAt {
		return errors.New("fatal")
	}
	return nil
}

func TestSweep_Coverage(t *testing.T) {
	targets, err := model.ParseTargets([]string{"mhp_direct_cpu", "mhp_sycl_gpu", "shp_sycl_gpu"})
	require.NoError(t, err)
	s := Sweep{
		Targets: targets,
		Sizes:   []int64{1000, 2000},
		Ranks:   []int{1, 2, 4, 8},
	}
	require.NoError(t, s.Validate())

	r := &recordingRunner{}
	require.NoError(t, s.Run(context.Background(), r))
	require.Len(t, r.cases, 3*2*4)

	seen := map[AnalysisCase]int{}
	for _, c := range r.cases {
		seen[c]++
	}
	for _, tgt := range s.Targets {
		for _, size := range s.Sizes {
			for _, n := range s.Ranks {
				assert.Equal(t, 1, seen[AnalysisCase{Target: tgt, VectorSize: size, Ranks: n}])
			}
		}
	}

	// target-major, then size, then ranks
	assert.Equal(t, AnalysisCase{Target: targets[0], VectorSize: 1000, Ranks: 1}, r.cases[0])
	assert.Equal(t, AnalysisCase{Target: targets[0], VectorSize: 1000, Ranks: 2}, r.cases[1])
	assert.Equal(t, AnalysisCase{Target: targets[0], VectorSize: 2000, Ranks: 1}, r.cases[4])
	assert.Equal(t, AnalysisCase{Target: targets[1], VectorSize: 1000, Ranks: 1}, r.cases[8])
}

func TestSweep_StopsOnFatal(t *testing.T) {
	targets, err := model.ParseTargets([]string{"shp_sycl_cpu"})
	require.NoError(t, err)
	s := Sweep{Targets: targets, Sizes: []int64{1}, Ranks: []int{1, 2, 3, 4}}

	r := &recordingRunner{failAt: 2}
	require.Error(t, s.Run(context.Background(), r))
	assert.Len(t, r.cases, 2)
}

func TestSweep_Validate(t *testing.T) {
	targets, err := model.ParseTargets([]string{"shp_sycl_cpu"})
	require.NoError(t, err)

	assert.Error(t, Sweep{Sizes: []int64{1}, Ranks: []int{1}}.Validate())
	assert.Error(t, Sweep{Targets: targets, Ranks: []int{1}}.Validate())
	assert.Error(t, Sweep{Targets: targets, Sizes: []int64{1}}.Validate())
	assert.Error(t, Sweep{Targets: targets, Sizes: []int64{0}, Ranks: []int{1}}.Validate())
	assert.Error(t, Sweep{Targets: targets, Sizes: []int64{1}, Ranks: []int{-1}}.Validate())
}

func TestRankSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    RankSpec
		want    []int
		wantErr string
	}{
		{name: "empty defaults to one rank", spec: RankSpec{}, want: []int{1}},
		{name: "explicit list", spec: RankSpec{List: []int{2, 6}}, want: []int{2, 6}},
		{name: "range", spec: RankSpec{Min: 2, Max: 5}, want: []int{2, 3, 4, 5}},
		{name: "range from one", spec: RankSpec{Max: 3}, want: []int{1, 2, 3}},
		{name: "sparse", spec: RankSpec{Max: 16, Sparse: true}, want: []int{1, 2, 4, 8, 12, 16}},
		{name: "sparse with min", spec: RankSpec{Min: 3, Max: 13, Sparse: true}, want: []int{4, 8, 12}},
		{name: "sparse without max", spec: RankSpec{Sparse: true}, wantErr: "maximum"},
		{name: "min without max", spec: RankSpec{Min: 2}, wantErr: "maximum"},
		{name: "min above max", spec: RankSpec{Min: 5, Max: 2}, wantErr: "exceeds"},
		{name: "list with range", spec: RankSpec{List: []int{1}, Max: 4}, wantErr: "combined"},
		{name: "zero in list", spec: RankSpec{List: []int{0}}, wantErr: "positive"},
		{name: "negative bound", spec: RankSpec{Max: -1}, wantErr: "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Ranks()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSparseRanks(t *testing.T) {
	assert.Empty(t, SparseRanks(0))
	assert.Equal(t, []int{1, 2}, SparseRanks(3))
	assert.Equal(t, []int{1, 2, 4, 8, 12}, SparseRanks(15))
}
