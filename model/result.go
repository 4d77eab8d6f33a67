package model

// ResultContext is the run description the benchmark binary writes into the
// "context" object of its JSON output.
type ResultContext struct {
	// Problem size per rank (or total, for strong scaling)
	VectorSize int64 `json:"default_vector_size"`
	// Number of ranks the benchmark was launched with
	Ranks int `json:"ranks"`
	// Target descriptor, e.g. MHP_SYCL_GPU
	Target string `json:"target"`
	// Execution model name (MHP or SHP)
	Model string `json:"model"`
	// Runtime name (SYCL or DIRECT)
	Runtime string `json:"runtime"`
	// Device name (CPU or GPU)
	Device string `json:"device"`
	// Whether the problem size grew with the rank count
	WeakScaling bool `json:"weak_scaling"`
	// Whether data was allocated in device memory
	DeviceMemory bool `json:"device_memory"`
	// Cores per CPU socket, from the lscpu dump in the context (0 if unknown)
	CoresPerSocket int `json:"cores_per_socket,omitempty"`
}

// BenchmarkRecord is one element of the "benchmarks" array.
type BenchmarkRecord struct {
	Name           string  `json:"name"`
	RealTime       float64 `json:"real_time"`
	BytesPerSecond float64 `json:"bytes_per_second,omitempty"`
}

// Scaling labels how the problem size relates to the rank count.
type Scaling string

const (
	ScalingStrong Scaling = "strong"
	ScalingWeak   Scaling = "weak"
)

// Row is one benchmark measurement flattened together with its run context.
type Row struct {
	// Benchmark name as reported, up to the first '/'
	BenchName string `json:"bench_name"`
	// Benchmark name without the _DR / _Reference suffix
	Benchmark string `json:"benchmark"`
	// Target label used for grouping (Reference_<DEVICE> for reference runs)
	Target       string  `json:"target"`
	Ranks        int     `json:"ranks"`
	Scaling      Scaling `json:"scaling"`
	DeviceMemory bool    `json:"device_memory"`
	Model        string  `json:"model"`
	Runtime      string  `json:"runtime"`
	Device       string  `json:"device"`
	VectorSize   int64   `json:"vsize"`
	// Bytes per second (1 when the benchmark did not report a throughput)
	BytesPerSecond float64 `json:"bytes_per_second"`
	CPUCores       float64 `json:"cpu_cores"`
	CPUSockets     float64 `json:"cpu_sockets"`
	// Real time of one iteration as reported by the benchmark
	RealTime float64 `json:"rtime"`
	// Result file the row was read from
	File string `json:"file"`
}

// GBs returns the bandwidth in GB/s.
func (r Row) GBs() float64 { return r.BytesPerSecond / 1e9 }

// TBs returns the bandwidth in TB/s.
func (r Row) TBs() float64 { return r.BytesPerSecond / 1e12 }
