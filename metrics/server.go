package metrics

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	defaultReadTimeout       = time.Minute
	defaultReadHeaderTimeout = time.Minute
	defaultPort              = 8080
	defaultPath              = "/metrics"
)

// Server serves the collectors registered on its own registry over HTTP.
type Server struct {
	mu                    sync.Mutex
	srv                   *http.Server
	ln                    net.Listener
	done                  chan struct{}
	reg                   *prometheus.Registry
	log                   zerolog.Logger
	enabled               bool
	host                  string
	port                  int
	path                  string
	httpReadTimeout       time.Duration
	httpReadHeaderTimeout time.Duration
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		enabled:               true,
		log:                   zerolog.Nop(),
		reg:                   prometheus.NewRegistry(),
		port:                  defaultPort,
		path:                  defaultPath,
		httpReadTimeout:       defaultReadTimeout,
		httpReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Path() string {
	return s.path
}

// Addr returns the address the server listens on, or nil if it is not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start binds the listen address and serves in the background. Bind failures,
// such as a port already in use, are returned here rather than logged later.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return ErrMetricsDisabled
	}
	if s.ln != nil {
		return ErrMetricsRunning
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics: listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{
		ErrorLog:      promLogger{s.log},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	s.srv = &http.Server{
		Handler:           mux,
		ReadTimeout:       s.httpReadTimeout,
		ReadHeaderTimeout: s.httpReadHeaderTimeout,
	}
	s.ln = ln
	s.done = make(chan struct{})

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("path", s.path).
		Msg("starting metrics server")

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server stopped unexpectedly")
		}
	}(s.srv, s.done)

	return nil
}

// Stop closes the listener and waits for the serving goroutine to return.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return ErrMetricsDisabled
	}
	if s.ln == nil {
		return ErrMetricsNotRunning
	}

	err := s.srv.Close()
	<-s.done
	s.srv, s.ln, s.done = nil, nil, nil
	return err
}

func (s *Server) Registry() *prometheus.Registry {
	return s.reg
}

func (s *Server) Register(instrumentation *Instrumentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range instrumentation.Collectors() {
		if err := s.reg.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return nil
}

// StartMetricsServer registers instrumentation on a new Server built from config and starts it.
// The returned Server is nil if registration failed.
func StartMetricsServer(config Config, instrumentation *Instrumentation, logger zerolog.Logger, version string) (metricsSvr *Server, err error) {
	metricsSvr = NewServer(
		WithLogger(logger),
		WithEnabled(config.Enabled),
		WithHost(config.Host),
		WithPort(config.Port),
		WithPath(config.Path),
		WithHttpTimeout(config.HttpTimeout),
		WithHttpHeaderTimeout(config.HttpHeaderTimeout),
	)
	if err = metricsSvr.Register(instrumentation); err != nil {
		logger.Err(err).
			Msg("failed to start metrics server")
		return nil, err
	}

	instrumentation.GaugeVecs[InstrumentationTypeVersion].With(prometheus.Labels{LabelVersion: version}).Set(1)
	if err = metricsSvr.Start(); err != nil {
		logger.Err(err).
			Msg("failed to start metrics server")
	}

	return
}

// promLogger reports promhttp handler errors through zerolog.
type promLogger struct {
	log zerolog.Logger
}

func (l promLogger) Println(v ...any) {
	l.log.Error().Msg(fmt.Sprint(v...))
}
