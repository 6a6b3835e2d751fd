package check

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/cmd/util"
	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/manifest"
	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/source"
)

func NewCheckManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "lists the races of the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := util.SetupLogger(cmd.ErrOrStderr()); err != nil {
				return err
			}
			return checkManifest(cmd)
		},
	}
	cmd.Flags().StringVar(&config.Search, "search", "",
		"show only races matching this term")
	return cmd
}

func checkManifest(cmd *cobra.Command) error {
	logger := log.Default().Named("check")
	races, err := manifest.Load(cmd.Context(), source.New(config.Source))
	if err != nil {
		logger.Error("could not load manifest", log.ErrorField(err))
		return err
	}
	found := manifest.Filter(races, config.Search)
	logger.Debug("manifest loaded",
		log.Int("races", len(races)), log.Int("matching", len(found)))
	renderManifest(cmd.OutOrStdout(), found)
	return nil
}

func renderManifest(w io.Writer, races []model.RaceDescriptor) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Race", "Date", "Series", "#", "Map", "Car", "Div"})
	for _, r := range races {
		t.AppendRow(table.Row{r.Slug(), r.Date, r.Series, r.RaceNum, r.Map, r.Car, r.Division})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", fmt.Sprint(len(races))})
	t.Render()
}
