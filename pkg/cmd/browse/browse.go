package browse

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/cmd/util"
	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/tui"
)

var logFile string

func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "browse the race results in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return browse(cmd)
		},
	}
	cmd.Flags().StringVar(&config.Race,
		"race",
		"",
		"race (filename without extension) to open on start")
	cmd.Flags().StringVar(&logFile,
		"log-file",
		"",
		"write log output to this file (discarded otherwise)")
	return cmd
}

func browse(cmd *cobra.Command) error {
	// the terminal belongs to the UI, logs must not go there
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	logger, err := util.SetupLogger(w)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	telemetry := util.SetupTelemetry(ctx)
	if telemetry != nil {
		defer telemetry.Shutdown()
	}

	state, _ := util.NewState(ctx, logger)
	m := tui.New(ctx, state,
		tui.WithInitialRace(config.Race),
		tui.WithLogger(logger.Named("tui")))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("terminal ui failed", log.ErrorField(err))
		return err
	}
	return nil
}
