// Package results loads the JSON files written by the benchmark programs.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/drbench/drbench/model"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Entry is one parsed result file.
type Entry struct {
	File       string
	Context    model.ResultContext
	Benchmarks []model.BenchmarkRecord
}

// Pattern returns the glob matching every result file of a prefix.
func Pattern(prefix string) string {
	return prefix + "-*.json"
}

// Find returns the result files for prefix, sorted by name.
func Find(prefix string) ([]string, error) {
	files, err := filepath.Glob(Pattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("invalid prefix %q: %w", prefix, err)
	}
	sort.Strings(files)
	return files, nil
}

var requiredContext = []string{
	"default_vector_size",
	"ranks",
	"target",
	"model",
	"runtime",
	"device",
	"weak-scaling",
	"device-memory",
}

var coresPerSocketRE = regexp.MustCompile(`Core\(s\) per socket:\s*(\d+)`)

// LoadFile parses a single result file.
func LoadFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	return Parse(path, data)
}

// Parse parses result file contents; name is only used in errors.
func Parse(name string, data []byte) (Entry, error) {
	if !gjson.ValidBytes(data) {
		return Entry{}, fmt.Errorf("%s is not valid JSON", name)
	}
	doc := gjson.ParseBytes(data)

	ctx := doc.Get("context")
	for _, key := range requiredContext {
		if !ctx.Get(key).Exists() {
			return Entry{}, fmt.Errorf("could not parse context of %s: missing %q", name, key)
		}
	}

	entry := Entry{
		File: name,
		Context: model.ResultContext{
			VectorSize:   ctx.Get("default_vector_size").Int(),
			Ranks:        int(ctx.Get("ranks").Int()),
			Target:       ctx.Get("target").String(),
			Model:        ctx.Get("model").String(),
			Runtime:      ctx.Get("runtime").String(),
			Device:       ctx.Get("device").String(),
			WeakScaling:  flag(ctx.Get("weak-scaling")),
			DeviceMemory: flag(ctx.Get("device-memory")),
		},
	}
	if m := coresPerSocketRE.FindStringSubmatch(ctx.Get("lscpu").String()); m != nil {
		entry.Context.CoresPerSocket, _ = strconv.Atoi(m[1])
	}

	var parseErr error
	doc.Get("benchmarks").ForEach(func(_, b gjson.Result) bool {
		bname := b.Get("name")
		if !bname.Exists() {
			parseErr = fmt.Errorf("benchmark without a name in %s", entry.File)
			return false
		}
		rec := model.BenchmarkRecord{
			Name:           bname.String(),
			RealTime:       b.Get("real_time").Float(),
			BytesPerSecond: 1,
		}
		if bw := b.Get("bytes_per_second"); bw.Exists() {
			rec.BytesPerSecond = bw.Float()
		}
		entry.Benchmarks = append(entry.Benchmarks, rec)
		return true
	})
	if parseErr != nil {
		return Entry{}, parseErr
	}

	return entry, nil
}

// flag reads a context flag, which the benchmark writes as "0"/"1".
func flag(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str == "1" || r.Str == "true"
	case gjson.Number:
		return r.Num != 0
	}
	return false
}

// LoadEntries loads every result file of prefix. Files that cannot be parsed
// fail the load unless lenient is set, in which case they are logged and
// skipped.
func LoadEntries(logger zerolog.Logger, prefix string, lenient bool) ([]Entry, error) {
	files, err := Find(prefix)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, file := range files {
		logger.Debug().Str("file", file).Msg("Found result file")
		entry, err := LoadFile(file)
		if err != nil {
			if lenient {
				logger.Warn().Err(err).Str("path", file).Msg("Failed to parse result file")
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
