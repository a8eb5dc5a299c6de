// Package web serves a ledger file over a small JSON API.
//
// The API reports the source of the ledger together with its errors, the
// accounts it posts to and their balances. With watching enabled, clients
// subscribed to /api/events are told to reload whenever the file changes.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// Only the files of the loaded ledger can be read or written.
package web

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/loader"
	"github.com/robinvdvleuten/money/telemetry"
)

// Server serves the API of a single ledger file.
type Server struct {
	Host     string
	Port     int
	ReadOnly bool
	Watch    bool

	file      string
	loader    *loader.Loader
	tolerance *ledger.ToleranceConfig

	mu    sync.RWMutex
	state *state

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// state is the outcome of the latest load of the ledger.
type state struct {
	result *loader.Result
	ledger *ledger.Ledger
	errs   []error // Parse and validation errors
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the host and port the server listens on.
func WithAddress(host string, port int) Option {
	return func(s *Server) {
		s.Host = host
		s.Port = port
	}
}

// WithLoader sets the loader the ledger file is read with.
func WithLoader(ldr *loader.Loader) Option {
	return func(s *Server) {
		s.loader = ldr
	}
}

// WithTolerance sets the tolerance transactions are checked with.
func WithTolerance(config *ledger.ToleranceConfig) Option {
	return func(s *Server) {
		s.tolerance = config
	}
}

// WithReadOnly rejects requests that write the ledger file.
func WithReadOnly(readOnly bool) Option {
	return func(s *Server) {
		s.ReadOnly = readOnly
	}
}

// WithWatch reloads the ledger whenever its file changes.
func WithWatch(watch bool) Option {
	return func(s *Server) {
		s.Watch = watch
	}
}

// New creates a server for the ledger in file.
func New(file string, opts ...Option) *Server {
	s := &Server{
		Host:       "127.0.0.1",
		Port:       8080,
		file:       file,
		loader:     loader.New(),
		tolerance:  ledger.NewToleranceConfig(),
		state:      &state{ledger: ledger.New()},
		sseClients: make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the ledger and serves the API until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.file == "" {
		return fmt.Errorf("ledger file is required")
	}

	ctx, timer := telemetry.Start(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	if s.Watch {
		go s.watch(ctx)
	} else {
		s.reload(ctx)
	}
	timer.End()

	server := &http.Server{
		Addr:              net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/source", s.handleGetSource)
		r.Put("/source", s.requireWritable(s.handlePutSource))
		r.Get("/accounts", s.handleGetAccounts)
		r.Get("/accounts/{account}", s.handleGetAccount)
		r.Get("/balances", s.handleGetBalances)
		r.Get("/events", s.handleSSE)
	})

	return r
}

// requireWritable is middleware that rejects write requests in read-only mode.
func (s *Server) requireWritable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly {
			http.Error(w, "Server is in read-only mode", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// reload loads the ledger file again and replaces the current state.
func (s *Server) reload(ctx context.Context) {
	result, err := s.loader.Load(ctx, s.file)
	s.apply(ctx, result, err)
}

// apply checks a freshly loaded ledger and makes it the current state.
func (s *Server) apply(ctx context.Context, result *loader.Result, err error) {
	next := &state{result: result, ledger: ledger.New(ledger.WithTolerance(s.tolerance))}

	switch {
	case err != nil:
		next.errs = unwrapAll(err)
	case result != nil:
		if err := next.ledger.Process(ctx, result.Ledger); err != nil {
			next.errs = unwrapAll(err)
		}
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

func unwrapAll(err error) []error {
	if e, ok := err.(interface{ Unwrap() []error }); ok {
		return e.Unwrap()
	}
	return []error{err}
}

// current returns the latest state.
func (s *Server) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// watch keeps the state up to date with the file and tells clients to reload.
func (s *Server) watch(ctx context.Context) {
	err := s.loader.Watch(ctx, func(result *loader.Result, err error) {
		s.apply(ctx, result, err)
		s.broadcast("reload")
	}, s.file)
	if err != nil {
		log.Printf("File watcher error: %v", err)
	}
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
