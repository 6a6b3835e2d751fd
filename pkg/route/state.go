// Package route owns the application state (the manifest) and decides
// which view (race list or race detail) belongs to a location.
package route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/manifest"
	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/racefile"
	"github.com/mpapenbr/race-results-hub/pkg/source"
)

// ErrFallbackToList is returned by Load if the race file could not be
// fetched. Callers show the list view in that case.
var ErrFallbackToList = errors.New("race not available, falling back to list")

type View int

const (
	ViewList View = iota
	ViewDetail
)

func (v View) String() string {
	if v == ViewDetail {
		return "detail"
	}
	return "list"
}

// Target is the result of resolving a race parameter
type Target struct {
	View     View
	Slug     string
	Filename string
	// Race is set if the slug matched a manifest entry
	Race *model.RaceDescriptor
}

type Option func(*State)

func WithSource(src source.Source) Option {
	return func(s *State) {
		s.src = src
	}
}

func WithParser(p *racefile.Parser) Option {
	return func(s *State) {
		s.parser = p
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *State) {
		s.tracer = tracer
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		s.log = l
	}
}

type State struct {
	mu       sync.RWMutex
	races    []model.RaceDescriptor
	src      source.Source
	parser   *racefile.Parser
	log      *log.Logger
	tracer   trace.Tracer
	loads    metric.Int64Counter
	failures metric.Int64Counter
	searches metric.Int64Counter
}

func NewState(opts ...Option) *State {
	ret := &State{
		races: []model.RaceDescriptor{},
		log:   log.Default().Named("route"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.parser == nil {
		ret.parser = racefile.NewParser()
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("rrh")
	}
	meter := otel.Meter("rrh")
	ret.loads = counter(meter, "rrh.race.loads",
		"number of race detail loads")
	ret.failures = counter(meter, "rrh.race.load.failures",
		"number of race loads falling back to the list")
	ret.searches = counter(meter, "rrh.manifest.searches",
		"number of race list searches")
	return ret
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		log.Warn("could not create counter", log.String("name", name), log.ErrorField(err))
		return noop.Int64Counter{}
	}
	return c
}

// Init loads the manifest. On failure the error is logged and returned,
// the race list stays empty.
func (s *State) Init(ctx context.Context) error {
	races, err := manifest.Load(ctx, s.src)
	if err != nil {
		s.log.Error("could not load manifest", log.ErrorField(err))
		return err
	}
	s.mu.Lock()
	s.races = races
	s.mu.Unlock()
	s.log.Info("manifest loaded", log.Int("races", len(races)))
	return nil
}

// Races returns a copy of the known races
func (s *State) Races() []model.RaceDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]model.RaceDescriptor, len(s.races))
	copy(ret, s.races)
	return ret
}

func (s *State) Search(ctx context.Context, term string) []model.RaceDescriptor {
	s.searches.Add(ctx, 1)
	return manifest.Filter(s.Races(), term)
}

// Resolve maps a race parameter to a target.
// An empty parameter selects the list. A parameter matching a manifest slug
// selects that race. Any other value is optimistically turned into a
// filename by appending the race file extension.
func (s *State) Resolve(param string) Target {
	slug := strings.TrimSpace(param)
	if slug == "" {
		return Target{View: ViewList}
	}
	if race, ok := manifest.FindBySlug(s.Races(), slug); ok {
		return Target{View: ViewDetail, Slug: race.Slug(), Filename: race.Filename, Race: &race}
	}
	return Target{View: ViewDetail, Slug: slug, Filename: slug + model.RaceFileExt}
}

// Load fetches and parses a race file.
// Fetch failures are wrapped with ErrFallbackToList, nothing is returned then.
func (s *State) Load(ctx context.Context, filename string) (*model.RaceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "route.Load",
		trace.WithAttributes(attribute.String("filename", filename)))
	defer span.End()
	attrs := metric.WithAttributes(attribute.String("filename", filename))

	s.loads.Add(ctx, 1, attrs)
	data, err := s.src.Fetch(ctx, filename)
	if err != nil {
		s.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, err.Error())
		s.log.Warn("could not load race file",
			log.String("filename", filename), log.ErrorField(err))
		return nil, fmt.Errorf("%w: %w", ErrFallbackToList, err)
	}
	return s.parser.Parse(string(data)), nil
}

// Reload re-reads the manifest. On failure the previous race list is kept.
func (s *State) Reload(ctx context.Context) error {
	return s.Init(ctx)
}
