package cli

// This file contains the list command for displaying result files.

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/drbench/drbench/model"
	"github.com/drbench/drbench/results"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	prefix := ctx.String("prefix")
	out := ctx.App.Writer

	files, err := results.Find(prefix)
	if err != nil {
		return err
	}
	entries, err := results.LoadEntries(a.logger, prefix, true)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No result files found matching: %s\n", results.Pattern(prefix))
		return nil
	}

	fmt.Fprintf(out, "\n=== Results (%d files) ===\n\n", len(entries))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTARGET\tRANKS\tVSIZE\tSCALING\tDEVICE MEMORY\tBENCHMARKS")
	for _, entry := range entries {
		rc := entry.Context
		scaling := model.ScalingStrong
		if rc.WeakScaling {
			scaling = model.ScalingWeak
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%t\t%d\n",
			filepath.Base(entry.File),
			rc.Target,
			rc.Ranks,
			rc.VectorSize,
			scaling,
			rc.DeviceMemory,
			len(entry.Benchmarks),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if skipped := len(files) - len(entries); skipped > 0 {
		fmt.Fprintf(out, "\n%d file(s) could not be parsed, run with --verbose for details\n", skipped)
	}

	return nil
}
