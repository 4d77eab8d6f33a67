package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/drbench/drbench/model"
)

var csvHeader = []string{
	"bench_name", "Benchmark", "Target", "Ranks", "Scaling", "Device Memory",
	"Bandwidth (TB/s)", "Bandwidth (GB/s)", "model", "runtime", "device",
	"vsize", "Number of CPU Cores", "Number of CPU Sockets", "rtime",
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.BenchName,
			r.Benchmark,
			r.Target,
			strconv.Itoa(r.Ranks),
			string(r.Scaling),
			strconv.FormatBool(r.DeviceMemory),
			formatFloat(r.TBs()),
			formatFloat(r.GBs()),
			r.Model,
			r.Runtime,
			r.Device,
			strconv.FormatInt(r.VectorSize, 10),
			formatFloat(r.CPUCores),
			formatFloat(r.CPUSockets),
			formatFloat(r.RealTime),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
