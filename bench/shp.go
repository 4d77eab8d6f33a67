package bench

// shp.go builds command lines for the shared-memory benchmark.

import (
	"fmt"

	"github.com/drbench/drbench/model"
)

// SHPOptions contains options for one shared-memory run.
type SHPOptions struct {
	Devices int          // Number of devices (--num-devices)
	Binary  string       // Path to the SHP benchmark program
	Target  model.Target // Device selection
	Bench   Options
}

// BuildSHPCommand builds a direct invocation of the SHP benchmark; there is no
// process launcher, each rank is a device slot inside one process.
func BuildSHPCommand(opts SHPOptions) Command {
	env := []string{DeviceSelector(opts.Target.Device)}
	if opts.Target.Device == model.DeviceCPU {
		env = append(env, "KMP_AFFINITY=compact")
	}

	args := BuildArgs(opts.Bench)
	args = append(args, fmt.Sprintf("--num-devices=%d", opts.Devices))

	return Command{
		Path: opts.Binary,
		Args: args,
		Env:  env,
	}
}
