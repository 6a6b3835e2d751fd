package check

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/cmd/util"
	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/results"
	"github.com/mpapenbr/race-results-hub/pkg/route"
)

var driver string

func NewCheckRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race slug",
		Short: "displays a single race as the viewer would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := util.SetupLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return checkRace(cmd, logger, args[0])
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "",
		"show only rows matching this driver filter")
	return cmd
}

//nolint:whitespace // can't make both editor and linter happy
func checkRace(
	cmd *cobra.Command, logger *log.Logger, param string,
) error {
	state, _ := util.NewState(cmd.Context(), logger)
	target := state.Resolve(param)
	if target.View != route.ViewDetail {
		return route.ErrFallbackToList
	}
	rec, err := state.Load(cmd.Context(), target.Filename)
	if err != nil {
		return err
	}
	d := results.Build(rec)
	d.FilterRows(driver)
	renderRace(cmd.OutOrStdout(), d)
	return nil
}

func renderRace(w io.Writer, d *results.Detail) {
	meta := table.NewWriter()
	meta.SetOutputMirror(w)
	meta.SetStyle(table.StyleLight)
	meta.SetTitle(d.Meta(model.MetaSeries) + " #" + d.Meta(model.MetaRaceNum))
	for _, m := range d.Metadata {
		meta.AppendRow(table.Row{m.Key, m.Value})
	}
	meta.Render()

	if d.ShowLinks() {
		links := table.NewWriter()
		links.SetOutputMirror(w)
		links.SetStyle(table.StyleLight)
		links.SetTitle("Links")
		for _, l := range d.Links {
			links.AppendRow(table.Row{l.Label, l.URL})
		}
		links.Render()
	}

	res := table.NewWriter()
	res.SetOutputMirror(w)
	res.SetStyle(table.StyleLight)
	header := table.Row{}
	for _, h := range d.Header {
		header = append(header, h)
	}
	res.AppendHeader(append(header, "Class"))
	for _, r := range lo.Filter(d.Rows, func(r results.Row, _ int) bool { return !r.Hidden }) {
		row := make(table.Row, max(len(d.Header), len(r.Cells)))
		for i, c := range r.Cells {
			row[i] = c.Display()
		}
		res.AppendRow(append(row, r.Class()))
	}
	res.Render()
}
