//nolint:funlen // ok for tests
package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDirSource_Fetch(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/results/manifest.json", []byte("[]"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/secret.txt", []byte("x"), 0o644))
	src := NewDirSource(mem, "/results")

	tests := []struct {
		name     string
		resource string
		want     string
		notFound bool
	}{
		{name: "existing", resource: "manifest.json", want: "[]"},
		{name: "missing", resource: "race.csv", notFound: true},
		{name: "outside base", resource: "../secret.txt", notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.Fetch(context.Background(), tt.resource)
			if tt.notFound {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
	_, isLocal := LocalDir(src)
	assert.False(t, isLocal, "mem backed source is not a local dir")
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/results/manifest.json":
			_, _ = w.Write([]byte(`[{"date":"2024-01-01"}]`))
		case "/results/boom.csv":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := New(srv.URL + "/results")
	httpSrc, ok := src.(*HTTPSource)
	require.True(t, ok)
	assert.Equal(t, srv.URL+"/results/", httpSrc.BaseURL())

	got, err := src.Fetch(context.Background(), "manifest.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2024-01-01"}]`, string(got))

	_, err = src.Fetch(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(context.Background(), "boom.csv")
	assert.ErrorIs(t, err, ErrNotFound, "any non-success status counts as not found")
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestHTTPSource_clientAndTracer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/results/race.csv" {
			_, _ = w.Write([]byte("Date,2024-01-01"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	transport := &countingTransport{}
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	src := NewHTTPSource(
		WithBaseURL(srv.URL+"/results/"),
		WithHTTPClient(&http.Client{Transport: transport}),
		WithTracer(tp.Tracer("test")),
	)

	_, err := src.Fetch(context.Background(), "race.csv")
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(2), transport.calls.Load())

	spans := sr.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "source.Fetch", s.Name())
	}
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status", http.StatusOK))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[1].Attributes(), attribute.String("name", "missing.csv"))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestNew_LocalDir(t *testing.T) {
	dir := t.TempDir()
	src := New(dir)
	got, ok := LocalDir(src)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}
