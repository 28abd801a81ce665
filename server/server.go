package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-gym-server/auth"
	"github.com/jrsteele09/go-gym-server/gym"
	"github.com/jrsteele09/go-gym-server/internal/config"
	"github.com/jrsteele09/go-gym-server/internal/metrics"
	"github.com/jrsteele09/go-gym-server/memberships"
	"github.com/jrsteele09/go-gym-server/users"
	"github.com/rs/zerolog/log"
)

// HealthCheck reports whether the backing storage is reachable.
type HealthCheck func(ctx context.Context) error

// Deps holds everything the handlers call into.
type Deps struct {
	Users       users.UserRepo
	Phones      users.PhoneRepo
	Memberships memberships.Repo
	Credentials *users.CredentialStore
	Auth        *auth.Service
	Guard       *auth.Guard
	Gym         *gym.Service
	Recorder    metrics.Recorder
	Metrics     http.Handler
	Health      HealthCheck
}

type Server struct {
	env          string
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	deps         Deps
	recorder     metrics.Recorder
	loginLimiter *RateLimiter
}

func New(ctx context.Context, config config.Config, deps Deps) (*Server, error) {
	if deps.Users == nil || deps.Phones == nil || deps.Memberships == nil {
		return nil, errors.New("[Server New] user, phone and membership repos are required")
	}
	if deps.Credentials == nil || deps.Auth == nil || deps.Guard == nil || deps.Gym == nil {
		return nil, errors.New("[Server New] credential store, auth, guard and gym services are required")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		deps:     deps,
		recorder: deps.Recorder,
		loginLimiter: NewRateLimiter(RateLimiterConfig{
			PerMinute: config.GetLoginRatePerMinute(),
			Burst:     config.GetLoginBurst(),
		}),
	}
	if s.recorder == nil {
		s.recorder = metrics.Nop{}
	}

	if err := s.InitialiseSystem(ctx); err != nil {
		s.loginLimiter.Stop()
		return nil, fmt.Errorf("[Server New] Failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDev {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Info().Msgf("[%-19s] %s", color+paddedMethod+ResetColor, path)
}
