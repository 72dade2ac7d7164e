package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tuvarna/passport-admin/internal/platform/timeouts"
	"github.com/tuvarna/passport-admin/internal/services/web/apiclient"
	"github.com/tuvarna/passport-admin/internal/services/web/composition"
	"github.com/tuvarna/passport-admin/internal/services/web/modules"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/httpx"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/observability"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/requestmeta"
	"github.com/tuvarna/passport-admin/internal/services/web/session"
	"github.com/tuvarna/passport-admin/internal/services/web/static"
	"github.com/tuvarna/passport-admin/internal/services/web/storage/sqlite"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	// APITimeout bounds each API call. Zero leaves calls bounded only by the
	// request context.
	APITimeout           time.Duration
	SessionDBPath        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	TrustForwardedProto  bool
	Logger               *log.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr      string
	httpServer    *http.Server
	store         *sqlite.Store
	sessions      *session.Manager
	sweepInterval time.Duration
	logger        *log.Logger
}

// HandlerDependencies are the collaborators of the root handler.
type HandlerDependencies struct {
	API      *apiclient.Client
	Sessions *session.Manager
	Policy   requestmeta.SchemePolicy
	Logger   *log.Logger
}

// NewHandler builds the root handler: shared middleware around the composed
// module mux.
func NewHandler(deps HandlerDependencies) (http.Handler, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	root, err := composition.ComposeAppHandler(composition.ComposeInput{
		Principal: newPrincipalResolvers(deps.Sessions),
		ModuleDependencies: modules.Dependencies{
			API:      deps.API,
			Sessions: deps.Sessions,
		},
		RequestSchemePolicy: deps.Policy,
		StaticFS:            static.FS,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}
	return httpx.Chain(root,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		httpx.SecurityHeaders(),
		observability.Tracing(),
		observability.RequestLogger(logger),
		deps.Sessions.Middleware(),
	), nil
}

// NewServer builds a configured web server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(config.SessionDBPath)
	if dbPath == "" {
		return nil, errors.New("session db path is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	if config.SessionSweepInterval <= 0 {
		config.SessionSweepInterval = timeouts.SessionSweep
	}

	client, err := apiclient.New(config.APIBaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: config.APITimeout}),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create session db dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	sessions, err := session.NewManager(store, session.Options{
		TTL:    config.SessionTTL,
		Policy: policy,
		Logger: logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init sessions: %w", err)
	}

	handler, err := NewHandler(HandlerDependencies{
		API:      client,
		Sessions: sessions,
		Policy:   policy,
		Logger:   logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build handler: %w", err)
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:         store,
		sessions:      sessions,
		sweepInterval: config.SessionSweepInterval,
		logger:        logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		s.sweepSessions(sweepCtx)
	}()
	defer func() {
		stopSweep()
		<-sweepDone
	}()

	serveErr := make(chan error, 1)
	s.logger.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// sweepSessions deletes expired sessions every sweep interval until ctx ends.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.sessions.Sweep(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Printf("session sweep failed err=%v", err)
				}
				continue
			}
			if n > 0 {
				s.logger.Printf("session sweep removed=%d", n)
			}
		}
	}
}

// Close releases the session store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Printf("close session store: %v", err)
		}
	}
}
