package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pixmesh/pkg/buildinfo"
	errs "github.com/matzehuels/pixmesh/pkg/errors"
	"github.com/matzehuels/pixmesh/pkg/httputil"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// DefaultMaxUpload caps request bodies when no limit is configured.
const DefaultMaxUpload = 32 << 20

// Response headers describing the mesh.
const (
	HeaderVertices  = "X-Mesh-Vertices"
	HeaderLayers    = "X-Mesh-Layers"
	HeaderGraphHash = "X-Graph-Hash"
	HeaderCache     = "X-Cache"
)

// Server handles mesh requests with a shared pipeline runner.
type Server struct {
	runner    *pipeline.Runner
	defaults  pipeline.Options
	maxUpload int64
	logger    *log.Logger
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaults sets the options used for query parameters a request omits.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithMaxUpload limits request bodies to n bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server around runner. A nil runner gets an uncached
// one.
func NewServer(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:    runner,
		maxUpload: DefaultMaxUpload,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(s.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, errs.New(errs.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
			httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
		})
		r.Post("/mesh", s.handleMesh)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type formatInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	out := make([]formatInfo, 0, len(pipeline.ValidFormats))
	for _, f := range pipeline.ValidFormats {
		out = append(out, formatInfo{Name: f, ContentType: pipeline.ContentTypes[f]})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleMesh(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query(), s.defaults)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	img, err := pipeline.Decode(r.Context(), data)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), img, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	format := opts.Formats[0]
	cacheState := "miss"
	if res.CacheInfo.MeshHit && res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set(HeaderVertices, strconv.Itoa(res.Stats.Vertices))
	h.Set(HeaderLayers, strconv.Itoa(res.Stats.Layers))
	h.Set(HeaderGraphHash, res.GraphHash)
	h.Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// parseOptions overlays the query parameters on defaults. Exactly one
// output format is rendered per request.
func parseOptions(q url.Values, defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults.Clone()
	opts.Logger = nil

	format := pipeline.DefaultFormat
	if len(defaults.Formats) > 0 {
		format = defaults.Formats[0]
	}
	if v := q.Get("format"); v != "" {
		format = v
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	if v := q.Get("thickness"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "thickness must be an integer: %q", v)
		}
		opts.Thickness = n
	}
	if v := q.Get("max_dist"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "max_dist must be a number: %q", v)
		}
		opts.MaxDist = pipeline.Float64(d)
	}

	flags := []struct {
		name   string
		target *bool
		invert bool
	}{
		{"smooth", &opts.NoSmooth, true},
		{"reduce", &opts.SkipReduce, true},
		{"volumes", &opts.SkipVolumes, true},
		{"any_channel", &opts.AnyChannel, false},
		{"invert", &opts.Invert, false},
		{"detailed", &opts.Detailed, false},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "%s must be a boolean: %q", f.name, v)
		}
		*f.target = b != f.invert
	}

	return opts, nil
}
