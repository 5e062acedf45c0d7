package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/discovery"
	"github.com/zedbee/gateway-wizard/internal/logging"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
	"github.com/zedbee/gateway-wizard/internal/version"
)

type usernameContextKey struct{}

func contextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey{}, username)
}

func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey{}).(string)
	return username
}

// Server is the gateway backend.
type Server struct {
	config  *Config
	storage *Storage
	secret  []byte

	// sysinfo is injectable so tests don't probe the host
	sysinfo func() *telemetry.SystemInfo
	now     func() time.Time

	httpServer *http.Server
	withdraw   func()
	shutdown   chan struct{}
}

// New creates a server from the given configuration. When the config does
// not pin a JWT secret, a random one is generated; sessions then do not
// survive a restart.
func New(config *Config) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	storage, err := OpenStorage(config.DBPath)
	if err != nil {
		return nil, err
	}

	secret := []byte(config.JWTSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			_ = storage.Close()
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logging.Warn("No JWT secret configured, sessions will not survive restarts")
	}

	return &Server{
		config:   config,
		storage:  storage,
		secret:   secret,
		sysinfo:  CollectSystemInfo,
		now:      time.Now,
		shutdown: make(chan struct{}),
	}, nil
}

// Start begins serving and blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket streams stay open
	}

	if s.config.Advertise {
		withdraw, err := discovery.Advertise(
			s.config.InstanceName(),
			s.config.Port,
			[]string{"version=" + version.Version, "model=zb-gw1"},
		)
		if err != nil {
			logging.Warn("Failed to advertise via mDNS, continuing without", zap.Error(err))
		} else {
			s.withdraw = withdraw
			logging.Info("Advertising gateway via mDNS",
				zap.String("instance", s.config.InstanceName()),
				zap.String("service", discovery.ServiceType))
		}
	}

	logging.Info("Gateway backend listening",
		zap.String("addr", s.config.Addr()),
		zap.String("db", s.config.DBPath),
		zap.String("version", version.Version))

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	close(s.shutdown)
	if s.withdraw != nil {
		s.withdraw()
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if closeErr := s.storage.Close(); err == nil {
		err = closeErr
	}
	return err
}
