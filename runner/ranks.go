package runner

import "fmt"

// RankSpec describes the rank counts of a sweep, either as an explicit list
// or as a range bounded by Max.
type RankSpec struct {
	List   []int
	Min    int
	Max    int
	Sparse bool // Use 1, 2, 4, 8, 12, 16, ... up to Max instead of every value
}

// Ranks expands s into rank counts. An empty RankSpec yields a single rank.
func (s RankSpec) Ranks() ([]int, error) {
	if s.Min < 0 || s.Max < 0 {
		return nil, fmt.Errorf("rank bounds must not be negative")
	}
	if s.Max == 0 {
		if s.Sparse {
			return nil, fmt.Errorf("sparse ranks require a maximum rank count")
		}
		if s.Min > 0 {
			return nil, fmt.Errorf("a minimum rank count requires a maximum rank count")
		}
		if len(s.List) == 0 {
			return []int{1}, nil
		}
		for _, n := range s.List {
			if n <= 0 {
				return nil, fmt.Errorf("rank count must be positive, got %d", n)
			}
		}
		return s.List, nil
	}

	if len(s.List) > 0 {
		return nil, fmt.Errorf("explicit rank counts cannot be combined with a rank range")
	}

	first := s.Min
	if first == 0 {
		first = 1
	}
	if first > s.Max {
		return nil, fmt.Errorf("minimum rank count %d exceeds maximum %d", first, s.Max)
	}

	if s.Sparse {
		var out []int
		for _, n := range SparseRanks(s.Max) {
			if n >= first {
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("no sparse rank count between %d and %d", first, s.Max)
		}
		return out, nil
	}

	out := make([]int, 0, s.Max-first+1)
	for n := first; n <= s.Max; n++ {
		out = append(out, n)
	}
	return out, nil
}

// SparseRanks returns 1, 2, 4 and then every multiple of 4 up to limit.
func SparseRanks(limit int) []int {
	var out []int
	for _, n := range []int{1, 2, 4} {
		if n <= limit {
			out = append(out, n)
		}
	}
	for n := 8; n <= limit; n += 4 {
		out = append(out, n)
	}
	return out
}
