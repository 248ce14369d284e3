package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
)

func (s *Server) initRoutes() {
	// API routes
	s.RegisterRouteHandler("POST "+s.routePrefix+RouteToken, ChainMiddleware(s.Token(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+s.routePrefix+RouteToken, ChainMiddleware(noContent, s.APIMiddleware()...))

	// Operational routes
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.Health(), s.RecoverMiddleware))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	if s.fileServer != nil {
		s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.fileServer.ServeHTTP, s.StaticMiddleware()...))
	}
}

// Health reports liveness.
func (s *Server) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
