package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/race-results-hub/log"
)

type HTTPSource struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
	log     *log.Logger
}

type HTTPOption func(*HTTPSource)

func WithBaseURL(baseURL string) HTTPOption {
	return func(s *HTTPSource) {
		s.baseURL = strings.TrimSuffix(baseURL, "/") + "/"
	}
}

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

func WithTracer(tracer trace.Tracer) HTTPOption {
	return func(s *HTTPSource) {
		s.tracer = tracer
	}
}

func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	ret := &HTTPSource{
		client: http.DefaultClient,
		log:    log.Default().Named("source.http"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("rrh")
	}
	return ret
}

func (s *HTTPSource) BaseURL() string {
	return s.baseURL
}

// Fetch issues a GET for baseURL + name.
// Any non-success status is reported as ErrNotFound.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "source.Fetch",
		trace.WithAttributes(attribute.String("name", name)))
	defer span.End()

	target := s.baseURL + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug("fetch failed",
			log.String("url", target), log.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("%s (%s): %w", name, resp.Status, ErrNotFound)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return data, nil
}
