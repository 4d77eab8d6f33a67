package model

import (
	"fmt"
	"sort"
)

// Model is the execution model of a benchmark binary.
type Model uint8

const (
	// ModelMHP is the distributed-memory model (one process per rank, MPI launcher).
	ModelMHP Model = iota
	// ModelSHP is the shared-memory model (one process, one device per rank).
	ModelSHP
)

func (m Model) String() string {
	switch m {
	case ModelMHP:
		return "MHP"
	case ModelSHP:
		return "SHP"
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// Runtime selects between the native and the accelerated (SYCL) code path.
type Runtime uint8

const (
	RuntimeDirect Runtime = iota
	RuntimeSYCL
)

func (r Runtime) String() string {
	switch r {
	case RuntimeDirect:
		return "DIRECT"
	case RuntimeSYCL:
		return "SYCL"
	}
	return fmt.Sprintf("Runtime(%d)", uint8(r))
}

// Device is the kind of device the benchmark runs on.
type Device uint8

const (
	DeviceCPU Device = iota
	DeviceGPU
)

func (d Device) String() string {
	switch d {
	case DeviceCPU:
		return "CPU"
	case DeviceGPU:
		return "GPU"
	}
	return fmt.Sprintf("Device(%d)", uint8(d))
}

// Target identifies which benchmark binary and environment to use.
type Target struct {
	Model   Model
	Runtime Runtime
	Device  Device
}

// String renders the target the way the benchmark reports it in its
// result context, e.g. MHP_SYCL_GPU.
func (t Target) String() string {
	return fmt.Sprintf("%s_%s_%s", t.Model, t.Runtime, t.Device)
}

// Accelerated reports whether the target runs through the SYCL runtime.
func (t Target) Accelerated() bool {
	return t.Runtime == RuntimeSYCL
}

var targets = map[string]Target{
	"mhp_direct_cpu": {ModelMHP, RuntimeDirect, DeviceCPU},
	"mhp_sycl_cpu":   {ModelMHP, RuntimeSYCL, DeviceCPU},
	"mhp_sycl_gpu":   {ModelMHP, RuntimeSYCL, DeviceGPU},
	"shp_sycl_cpu":   {ModelSHP, RuntimeSYCL, DeviceCPU},
	"shp_sycl_gpu":   {ModelSHP, RuntimeSYCL, DeviceGPU},
}

// TargetNames returns the accepted target tokens in sorted order.
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTarget maps a CLI token such as "mhp_sycl_gpu" to its Target.
func ParseTarget(name string) (Target, error) {
	t, ok := targets[name]
	if !ok {
		return Target{}, fmt.Errorf("unknown target %q (valid: %v)", name, TargetNames())
	}
	return t, nil
}

// ParseTargets parses every token, failing on the first unknown one.
func ParseTargets(names []string) ([]Target, error) {
	out := make([]Target, 0, len(names))
	for _, name := range names {
		t, err := ParseTarget(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Name returns the CLI token of the target, or "" for a combination that has
// no token (e.g. SHP with the DIRECT runtime).
func (t Target) Name() string {
	for name, candidate := range targets {
		if candidate == t {
			return name
		}
	}
	return ""
}
