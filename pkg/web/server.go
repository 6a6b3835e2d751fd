// Package web serves the results viewer to browsers.
// Views are rendered on the server, search and driver filter are
// live updated via datastar SSE patches.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/route"
	"github.com/mpapenbr/race-results-hub/pkg/utils/broadcast"
)

const shutdownTimeout = 5 * time.Second

type Option func(*Server)

func WithState(state *route.State) Option {
	return func(s *Server) {
		s.state = state
	}
}

func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithWatchDir enables reloading the manifest when it changes in dir
func WithWatchDir(dir string) Option {
	return func(s *Server) {
		s.watchDir = dir
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

type Server struct {
	state    *route.State
	addr     string
	watchDir string
	log      *log.Logger
	tracer   trace.Tracer
	reloads  chan int
	updates  broadcast.Server[int]
	mu       sync.Mutex
	version  int
}

func NewServer(opts ...Option) *Server {
	ret := &Server{
		addr:   "localhost:8080",
		log:    log.Default().Named("web"),
		tracer: otel.Tracer("rrh"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.watchDir != "" {
		ret.reloads = make(chan int)
		ret.updates = broadcast.NewServer("manifest", ret.reloads)
	}
	return ret
}

// Handler returns the routes of the viewer
func (s *Server) Handler() http.Handler {
	h := NewHandlers(s.state, s.updates)
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	r.Get("/", h.Index)
	r.Get("/races/search", h.SearchSSE)
	r.Get("/races/updates", h.UpdatesSSE)
	r.Get("/race/filter", h.DriverFilterSSE)
	r.Get("/healthz", h.Healthz)
	return newCORS().Handler(r)
}

// Serve starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("Starting web server", log.String("addr", s.addr))
	eg, egctx := errgroup.WithContext(ctx)

	//nolint:gosec // by design
	srv := &http.Server{
		Addr:    s.addr,
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchDir != "" {
		defer s.updates.Close()
		eg.Go(func() error {
			return s.watchManifest(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Debug("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		reqLog := s.log.With(log.String("reqId", middleware.GetReqID(ctx)))
		next.ServeHTTP(ww, r.WithContext(log.AddToContext(ctx, reqLog)))
		reqLog.Debug("request",
			log.String("method", r.Method),
			log.String("uri", r.URL.RequestURI()),
			log.Int("status", ww.Status()),
			log.Int("bytes", ww.BytesWritten()),
			log.Duration("duration", time.Since(start)))
	})
}

func newCORS() *cors.Cors {
	// The viewer only reads data, every origin may do that.
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Content-Encoding",
			"Content-Type",
		},
		MaxAge: 7200, // 2 hours in seconds
	})
}
