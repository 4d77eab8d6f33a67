package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"
)

// Extensions of the files a sweep and its plots leave behind.
var cleanExtensions = []string{"json", "csv", "png", "svg", "pdf"}

func cleanFiles(prefix string) ([]string, error) {
	var files []string
	for _, ext := range cleanExtensions {
		matches, err := filepath.Glob(fmt.Sprintf("%s-*.%s", prefix, ext))
		if err != nil {
			return nil, fmt.Errorf("invalid prefix %q: %w", prefix, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func (a *App) clean(ctx *cli.Context) error {
	prefix := ctx.String("prefix")
	out := ctx.App.Writer

	files, err := cleanFiles(prefix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No files found for prefix: %s\n", prefix)
		return nil
	}

	if ctx.Bool("dry-run") {
		for _, f := range files {
			fmt.Fprintln(out, f)
		}
		return nil
	}

	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return fmt.Errorf("failed to remove %s: %w", f, err)
		}
		a.logger.Debug().Str("file", f).Msg("Removed")
	}
	a.logger.Info().Int("files", len(files)).Str("prefix", prefix).Msg("Cleaned up")
	return nil
}
