package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/drbench/drbench/model"
	"github.com/urfave/cli/v2"
)

func (a *App) targets(ctx *cli.Context) error {
	w := tabwriter.NewWriter(ctx.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODEL\tRUNTIME\tDEVICE")
	for _, name := range model.TargetNames() {
		t, err := model.ParseTarget(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, t.Model, t.Runtime, t.Device)
	}
	return w.Flush()
}
