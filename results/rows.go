package results

import (
	"strings"

	"github.com/drbench/drbench/model"
)

// sortFixtures report the sorted algorithm as the second name component.
var sortFixtures = map[string]bool{
	"DRSortFixture":   true,
	"SyclSortFixture": true,
}

// nameTarget strips the _DR / _Reference suffix from a benchmark name.
// Reference runs are grouped under their own Reference_<DEVICE> target.
func nameTarget(bname, target, device string) (string, string) {
	i := strings.LastIndexByte(bname, '_')
	if i < 0 {
		return bname, target
	}
	switch bname[i+1:] {
	case "Reference":
		return bname[:i], "Reference_" + device
	case "DR":
		return bname[:i], target
	}
	return bname, target
}

// Rows flattens entries into one row per benchmark record.
func Rows(entries []Entry) []model.Row {
	var rows []model.Row
	for _, e := range entries {
		ctx := e.Context
		coresPerSocket := float64(ctx.CoresPerSocket)
		if coresPerSocket == 0 {
			coresPerSocket = 1
		}
		ranks := float64(ctx.Ranks)

		cpuCores := ranks
		if ctx.Runtime != model.RuntimeDirect.String() {
			cpuCores = ranks * coresPerSocket
		}
		cpuSockets := ranks
		if ctx.Runtime != model.RuntimeSYCL.String() {
			cpuSockets = ranks / coresPerSocket
		}

		scaling := model.ScalingStrong
		if ctx.WeakScaling {
			scaling = model.ScalingWeak
		}

		for _, b := range e.Benchmarks {
			bname, rest, _ := strings.Cut(b.Name, "/")
			if sortFixtures[bname] {
				bname, _, _ = strings.Cut(rest, "/")
			}
			benchmark, target := nameTarget(bname, ctx.Target, ctx.Device)

			rows = append(rows, model.Row{
				BenchName:      bname,
				Benchmark:      benchmark,
				Target:         target,
				Ranks:          ctx.Ranks,
				Scaling:        scaling,
				DeviceMemory:   ctx.DeviceMemory,
				Model:          ctx.Model,
				Runtime:        ctx.Runtime,
				Device:         ctx.Device,
				VectorSize:     ctx.VectorSize,
				BytesPerSecond: b.BytesPerSecond,
				CPUCores:       cpuCores,
				CPUSockets:     cpuSockets,
				RealTime:       b.RealTime,
				File:           e.File,
			})
		}
	}
	return rows
}
