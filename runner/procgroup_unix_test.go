//go:build unix

package runner

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/drbench/drbench/bench"
	"github.com/stretchr/testify/assert"
)

func TestProcessExecutor_TimeoutKillsGrandchildren(t *testing.T) {
	sh := shell(t)
	marker := filepath.Join(t.TempDir(), "marker")

	e := &ProcessExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, WaitDelay: time.Second}
	cmd := bench.Command{
		Path: sh,
		Args: []string{"-c", `sh -c 'sleep 1; touch "$MARKER"' & wait`},
		Env:  []string{"MARKER=" + marker},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := e.Execute(ctx, cmd)
	assert.ErrorIs(t, err, ErrTimeout)

	time.Sleep(1500 * time.Millisecond)
	assert.NoFileExists(t, marker, "rank process outlived the timed out attempt")
}
