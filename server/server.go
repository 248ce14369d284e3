package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/go-discord-activity/internal/config"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TokenExchanger trades an authorization code for an access token upstream.
// discord.TokenExchanger implements it.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

type Server struct {
	env         string // Environment (e.g., "development", "production")
	routePrefix string
	mux         *http.ServeMux
	routes      []string
	fileServer  http.Handler
	config      config.Config
	exchanger   TokenExchanger
	validate    *validator.Validate
	logger      zerolog.Logger
	registry    *prometheus.Registry
	metrics     *Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithFileServer replaces the client build file server used in production.
func WithFileServer(handler http.Handler) Option {
	return func(s *Server) {
		s.fileServer = handler
	}
}

func New(config config.Config, exchanger TokenExchanger, opts ...Option) (*Server, error) {
	if config == nil {
		return nil, fmt.Errorf("[Server New] %w: config is required", apperrors.ErrInvalidConfig)
	}
	if exchanger == nil {
		return nil, fmt.Errorf("[Server New] %w: token exchanger is required", apperrors.ErrMissingClientSecret)
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		exchanger: exchanger,
		validate:  validator.New(),
		logger:    log.Logger,
		registry:  registry,
		metrics:   NewMetrics(registry),
	}
	if config.IsProduction() {
		s.routePrefix = RouteAPIPrefix
		s.fileServer = FileServerHandler(config.GetClientDist())
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.config.IsProduction() {
		return // Skip logging outside development
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	s.logger.Info().Msgf("[%-19s] %s", displayMethod, path)
}
