package bench

import "github.com/drbench/drbench/model"

const (
	// DeviceSelectorEnv is read by the SYCL runtime to pick devices.
	DeviceSelectorEnv = "ONEAPI_DEVICE_SELECTOR"

	CPUSelector = "opencl:cpu"
	GPUSelector = "level_zero:gpu"
)

// DeviceSelector returns the ONEAPI_DEVICE_SELECTOR entry for a device kind.
func DeviceSelector(d model.Device) string {
	if d == model.DeviceGPU {
		return DeviceSelectorEnv + "=" + GPUSelector
	}
	return DeviceSelectorEnv + "=" + CPUSelector
}

// PinningEnv returns the MPI pinning variables used for native CPU runs:
// one rank per core, ranks placed compactly.
func PinningEnv() []string {
	return []string{
		"I_MPI_PIN_DOMAIN=core",
		"I_MPI_PIN_ORDER=compact",
		"I_MPI_PIN_CELL=unit",
	}
}
