package cli

import (
	"fmt"

	"github.com/drbench/drbench/charts"
	"github.com/drbench/drbench/results"
	"github.com/urfave/cli/v2"
)

func (a *App) plot(ctx *cli.Context) error {
	return a.createPlots(ctx.String("prefix"), ctx.String("format"))
}

func (a *App) createPlots(prefix, format string) error {
	entries, err := results.LoadEntries(a.logger, prefix, false)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no result files match %s", results.Pattern(prefix))
	}
	a.logger.Info().Int("files", len(entries)).Str("prefix", prefix).Msg("Loaded results")

	c, err := charts.New(a.logger, results.Rows(entries), prefix, format)
	if err != nil {
		return err
	}
	written, err := c.CreateAll()
	if err != nil {
		return err
	}
	if len(written) == 0 {
		a.logger.Warn().Str("prefix", prefix).Msg("No chart had enough data to plot")
		return nil
	}
	a.logger.Info().Strs("files", written).Msg("Charts written")
	return nil
}
