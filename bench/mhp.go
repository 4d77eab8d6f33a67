package bench

// mhp.go builds launcher command lines for the distributed-memory benchmark.

import (
	"fmt"

	"github.com/drbench/drbench/model"
)

// DefaultLauncher is the MPI process launcher.
const DefaultLauncher = "mpirun"

// MHPOptions contains options for one distributed-memory run.
type MHPOptions struct {
	Launcher string       // Process launcher (default: mpirun)
	Fork     bool         // Pass -launcher=fork to the launcher
	Ranks    int          // Number of processes (-n)
	Binary   string       // Path to the MHP benchmark program
	Target   model.Target // Runtime and device selection
	Bench    Options
}

// BuildMHPCommand builds the launcher invocation. SYCL runs select their
// device through ONEAPI_DEVICE_SELECTOR and let the benchmark spread devices
// over ranks; native runs are pinned one rank per core.
func BuildMHPCommand(opts MHPOptions) Command {
	launcher := opts.Launcher
	if launcher == "" {
		launcher = DefaultLauncher
	}

	args := []string{"-n", fmt.Sprintf("%d", opts.Ranks)}
	if opts.Fork {
		args = append(args, "-launcher=fork")
	}
	args = append(args, opts.Binary)

	var env []string
	if opts.Target.Accelerated() {
		env = []string{DeviceSelector(opts.Target.Device)}
		args = append(args, "--sycl")
	} else {
		env = PinningEnv()
	}

	args = append(args, BuildArgs(opts.Bench)...)

	return Command{
		Path: launcher,
		Args: args,
		Env:  env,
	}
}
