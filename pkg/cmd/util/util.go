package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/racefile"
	"github.com/mpapenbr/race-results-hub/pkg/route"
	"github.com/mpapenbr/race-results-hub/pkg/source"
	"github.com/mpapenbr/race-results-hub/pkg/utils"
)

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger creates the logger according to the log flags and makes it
// the default logger.
func SetupLogger(w io.Writer) (*log.Logger, error) {
	opts := []log.Option{log.WithCaller(true), log.AddCallerSkip(1)}
	if config.LogConfig != "" {
		rules, err := os.ReadFile(config.LogConfig)
		if err != nil {
			return nil, fmt.Errorf("could not read log config: %w", err)
		}
		filter, err := log.WithFilterRules(string(rules))
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter)
	}

	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(w, ParseLogLevel(config.LogLevel, log.InfoLevel), opts...)
	default:
		logger = log.DevLogger(w, ParseLogLevel(config.LogLevel, log.DebugLevel), opts...)
	}
	log.ResetDefault(logger)
	return logger, nil
}

// SetupTelemetry starts telemetry if enabled. The result may be nil.
func SetupTelemetry(ctx context.Context) *config.Telemetry {
	if !config.EnableTelemetry {
		return nil
	}
	log.Info("Enabling telemetry")
	telemetry, err := config.SetupTelemetry(ctx)
	if err != nil {
		log.Warn("Could not setup telemetry", log.ErrorField(err))
		return nil
	}
	err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
	if err != nil {
		log.Warn("Could not start runtime metrics", log.ErrorField(err))
	}
	return telemetry
}

// NewState creates the application state for the configured source and
// loads the manifest. A failing manifest load is logged only, the race
// list stays empty then.
func NewState(ctx context.Context, logger *log.Logger) (*route.State, source.Source) {
	return newState(ctx, config.FromGlobals(), logger)
}

func newState(
	ctx context.Context, cfg config.Config, logger *log.Logger,
) (*route.State, source.Source) {
	src := source.New(cfg.Source)
	waitForSource(ctx, src, cfg.WaitForServices)
	state := route.NewState(
		route.WithSource(src),
		route.WithParser(racefile.NewParser(racefile.WithQuotedFields(cfg.QuotedFields))),
		route.WithLogger(logger.Named("route")),
	)
	_ = state.Init(ctx)
	return state, src
}

func waitForSource(ctx context.Context, src source.Source, wait string) {
	remote, ok := src.(*source.HTTPSource)
	if !ok {
		return
	}
	timeout, err := time.ParseDuration(wait)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 15s", log.ErrorField(err))
		timeout = 15 * time.Second
	}
	addr := utils.ExtractFromHTTPURL(remote.BaseURL())
	if addr == "" {
		return
	}
	if err := utils.WaitForTCP(ctx, addr, timeout); err != nil {
		log.Warn("results source not reachable", log.ErrorField(err))
		return
	}
	if err := utils.WaitForHTTPResponse(ctx, remote.BaseURL(), timeout); err != nil {
		log.Warn("results source not answering", log.ErrorField(err))
	}
}
