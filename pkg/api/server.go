package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/middleware"
	"github.com/ariahq/aria/pkg/observability"
)

// Server owns the router and the base request pipeline. Handler groups are
// mounted onto it by the binaries, so each binary serves only its own
// surface.
type Server struct {
	router  *mux.Router
	logger  *logrus.Logger
	metrics *observability.Metrics
}

// NewServer creates a server with request ID, logging, and panic recovery
// wired in
func NewServer(logger *logrus.Logger, metrics *observability.Metrics) *Server {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger, metrics))
	router.Use(middleware.Recovery(logger))

	return &Server{
		router:  router,
		logger:  logger,
		metrics: metrics,
	}
}

// Router exposes the underlying router for handler registration
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Subrouter creates a path-prefixed subrouter with extra middleware, used to
// mount an auth-gated handler group
func (s *Server) Subrouter(prefix string, middlewares ...mux.MiddlewareFunc) *mux.Router {
	sub := s.router.PathPrefix(prefix).Subrouter()
	for _, m := range middlewares {
		sub.Use(m)
	}
	return sub
}
