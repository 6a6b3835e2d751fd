package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/cmd/util"
	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/source"
	"github.com/mpapenbr/race-results-hub/pkg/web"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serves the race results to browsers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"addr",
		"a",
		"localhost:8080",
		"web server listen address")
	cmd.Flags().BoolVar(&config.Watch,
		"watch",
		false,
		"reload the manifest when it changes (local directory sources only)")
	return cmd
}

func startServer(parent context.Context) error {
	logger, err := util.SetupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug("Config:",
		log.String("source", config.Source),
		log.String("addr", config.ServerAddr),
		log.Bool("watch", config.Watch),
		log.Bool("quotedFields", config.QuotedFields),
	)

	telemetry := util.SetupTelemetry(ctx)
	if telemetry != nil {
		defer telemetry.Shutdown()
	}

	state, src := util.NewState(ctx, logger)
	opts := []web.Option{
		web.WithState(state),
		web.WithAddr(config.ServerAddr),
		web.WithLogger(logger.Named("web")),
	}
	if config.Watch {
		if dir, ok := source.LocalDir(src); ok {
			opts = append(opts, web.WithWatchDir(dir))
		} else {
			log.Warn("watch is only supported for local directories",
				log.String("source", config.Source))
		}
	}

	if err := web.NewServer(opts...).Serve(ctx); err != nil {
		log.Error("server stopped", log.ErrorField(err))
		return err
	}
	log.Info("Server terminated")
	return nil
}
