package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drbench/drbench/bench"
	"github.com/drbench/drbench/runner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultTemplate = `{
  "context": {
    "default_vector_size": "1000",
    "ranks": %s,
    "target": "MHP_DIRECT_CPU",
    "model": "MHP",
    "runtime": "DIRECT",
    "device": "CPU",
    "weak-scaling": "0",
    "device-memory": "0",
    "lscpu": "Core(s) per socket: 1"
  },
  "benchmarks": [
    {"name": "Stream_Triad/1000", "real_time": 1.0, "bytes_per_second": %s}
  ]
}`

// recordingExecutor fails with the scripted errors and otherwise writes a
// result file the way the benchmark would.
type recordingExecutor struct {
	errs     []error
	commands []bench.Command
}

func (e *recordingExecutor) Execute(_ context.Context, cmd bench.Command) (runner.Usage, error) {
	e.commands = append(e.commands, cmd)
	if i := len(e.commands) - 1; i < len(e.errs) && e.errs[i] != nil {
		return runner.Usage{}, e.errs[i]
	}

	var ranks string
	for i, arg := range cmd.Args {
		if arg == "-n" && i+1 < len(cmd.Args) {
			ranks = cmd.Args[i+1]
		}
	}
	out := outputPath(cmd)
	if out == "" {
		return runner.Usage{}, nil
	}
	content := fmt.Sprintf(resultTemplate, ranks, ranks+"e11")
	return runner.Usage{}, os.WriteFile(out, []byte(content), 0o644)
}

func newTestApp(t *testing.T, exec runner.Executor) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a := New()
	a.logger = zerolog.Nop()
	a.cli.Writer = &out
	a.executor = exec
	return a, &out
}

func run(a *App, args ...string) error {
	return a.Run(append([]string{AppName}, args...))
}

func TestTargets(t *testing.T) {
	a, out := newTestApp(t, nil)
	require.NoError(t, run(a, "targets"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, out.String(), "mhp_direct_cpu")
	assert.Contains(t, out.String(), "shp_sycl_gpu")
}

func TestAnalyzeDryRun(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "dr-bench")
	exec := &recordingExecutor{}
	a, _ := newTestApp(t, exec)

	require.NoError(t, run(a, "analyze", "--prefix", prefix, "--dry-run",
		"-t", "mhp_sycl_gpu", "-t", "shp_sycl_cpu", "-n", "1", "-n", "2"))

	assert.Empty(t, exec.commands)
	files, err := filepath.Glob(prefix + "-*")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestAnalyzeRunsSweepAndPlots(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "dr-bench")
	exec := &recordingExecutor{}
	a, _ := newTestApp(t, exec)

	require.NoError(t, run(a, "analyze", "--prefix", prefix,
		"-s", "1000", "--min-ranks", "1", "--max-ranks", "4", "--format", "svg"))

	require.Len(t, exec.commands, 4)
	for i, cmd := range exec.commands {
		assert.Equal(t, "mpirun", cmd.Path)
		assert.Equal(t, []string{"-n", fmt.Sprint(i + 1), "-launcher=fork", bench.DefaultMHPBench}, cmd.Args[:4])
		assert.Contains(t, cmd.Args, "--benchmark_filter=Stream_")
	}

	results, err := filepath.Glob(prefix + "-*.json")
	require.NoError(t, err)
	assert.Len(t, results, 4)

	assert.FileExists(t, prefix+"-Stream_Triad-CPU.csv")
	assert.FileExists(t, prefix+"-Stream_Triad-CPU.svg")
}

func TestAnalyzeRetriesExhausted(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "dr-bench")
	exec := &recordingExecutor{errs: []error{
		&runner.ExitError{Code: 1},
		&runner.ExitError{Code: 1},
		&runner.ExitError{Code: 1},
	}}
	a, _ := newTestApp(t, exec)

	err := run(a, "analyze", "--prefix", prefix, "--retries", "2", "--no-plot", "--no-fork")
	require.ErrorIs(t, err, runner.ErrRetriesExhausted)
	require.Len(t, exec.commands, 3)
	assert.NotContains(t, exec.commands[0].Args, "-launcher=fork")
}

func TestAnalyzeRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "min ranks without max ranks",
			args:    []string{"--min-ranks", "2"},
			wantErr: "maximum rank count",
		},
		{
			name:    "sparse without max ranks",
			args:    []string{"--sparse"},
			wantErr: "maximum rank count",
		},
		{
			name:    "unknown target",
			args:    []string{"-t", "tpu"},
			wantErr: `unknown target "tpu"`,
		},
		{
			name:    "negative retries",
			args:    []string{"--retries", "-1"},
			wantErr: "retries must not be negative",
		},
		{
			name:    "missing policy file",
			args:    []string{"--policy", "does-not-exist.yaml"},
			wantErr: "read policy file",
		},
		{
			name:    "non-positive vector size",
			args:    []string{"-s", "0"},
			wantErr: "vector size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecutor{}
			a, _ := newTestApp(t, exec)
			prefix := filepath.Join(t.TempDir(), "dr-bench")

			err := run(a, append([]string{"analyze", "--prefix", prefix}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, exec.commands)
		})
	}
}

func TestAnalyzeAppliesPolicy(t *testing.T) {
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(policyPath, []byte(`
targets:
  mhp_direct_cpu:
    filters: [DotProduct]
    env:
      I_MPI_PIN_DOMAIN: socket
`), 0o644))

	exec := &recordingExecutor{}
	a, _ := newTestApp(t, exec)
	require.NoError(t, run(a, "analyze", "--prefix", filepath.Join(dir, "dr-bench"),
		"--policy", policyPath, "--no-plot"))

	require.Len(t, exec.commands, 1)
	assert.Contains(t, exec.commands[0].Args, "--benchmark_filter=DotProduct")
	domain, ok := exec.commands[0].Lookup("I_MPI_PIN_DOMAIN")
	require.True(t, ok)
	assert.Equal(t, "socket", domain)
}

func TestPlotWithoutResults(t *testing.T) {
	a, _ := newTestApp(t, nil)
	err := run(a, "plot", "--prefix", filepath.Join(t.TempDir(), "dr-bench"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result files match")
}

func TestListAndClean(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "dr-bench")

	a, _ := newTestApp(t, &recordingExecutor{})
	require.NoError(t, run(a, "analyze", "--prefix", prefix, "-n", "2", "--no-plot"))
	require.NoError(t, os.WriteFile(prefix+"-broken.json", []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(prefix+"-Stream_Triad-CPU.csv", []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.json"), []byte(`{}`), 0o644))

	t.Run("list", func(t *testing.T) {
		a, out := newTestApp(t, nil)
		require.NoError(t, run(a, "list", "--prefix", prefix))
		assert.Contains(t, out.String(), "Results (1 files)")
		assert.Contains(t, out.String(), "MHP_DIRECT_CPU")
		assert.Contains(t, out.String(), "1 file(s) could not be parsed")
	})

	t.Run("clean dry run", func(t *testing.T) {
		a, out := newTestApp(t, nil)
		require.NoError(t, run(a, "clean", "--prefix", prefix, "--dry-run"))
		listed := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, listed, 3)
		files, err := filepath.Glob(prefix + "-*")
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("clean", func(t *testing.T) {
		a, _ := newTestApp(t, nil)
		require.NoError(t, run(a, "clean", "--prefix", prefix))
		files, err := filepath.Glob(prefix + "-*")
		require.NoError(t, err)
		assert.Empty(t, files)
		assert.FileExists(t, filepath.Join(dir, "keep.json"))
	})
}

func TestEnvFile(t *testing.T) {
	t.Run("missing default file is ignored", func(t *testing.T) {
		a, _ := newTestApp(t, nil)
		require.NoError(t, run(a, "targets"))
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		a, _ := newTestApp(t, nil)
		err := run(a, "--env-file", filepath.Join(t.TempDir(), "missing.env"), "targets")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load env file")
	})

	t.Run("verbose from env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "drbench.env")
		require.NoError(t, os.WriteFile(envFile, []byte(verboseEnv+"=true\n"), 0o644))
		t.Cleanup(func() {
			os.Unsetenv(verboseEnv)
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		})

		a, _ := newTestApp(t, nil)
		require.NoError(t, run(a, "--env-file", envFile, "targets"))
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("values feed flags", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, "drbench.env")
		prefix := filepath.Join(dir, "from-env")
		require.NoError(t, os.WriteFile(envFile, []byte("DRBENCH_PREFIX="+prefix+"\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("DRBENCH_PREFIX") })

		exec := &recordingExecutor{}
		a, _ := newTestApp(t, exec)
		require.NoError(t, run(a, "--env-file", envFile, "analyze", "--no-plot"))

		require.Len(t, exec.commands, 1)
		out := outputPath(exec.commands[0])
		assert.True(t, strings.HasPrefix(out, prefix+"-"), "output %s does not use the prefix from the env file", out)
	})
}

func outputPath(cmd bench.Command) string {
	for _, arg := range cmd.Args {
		if strings.HasPrefix(arg, "--benchmark_out=") {
			return strings.TrimPrefix(arg, "--benchmark_out=")
		}
	}
	return ""
}

func TestSetVersion(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.SetVersion("v1.0.0", "0123456789abcdef", "2024-01-01")
	assert.Equal(t, "v1.0.0 (commit: 01234567, built: 2024-01-01)", a.cli.Version)

	a.SetVersion("dev", "none", "unknown")
	assert.Equal(t, "dev", a.cli.Version)
}
