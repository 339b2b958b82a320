// Package server is the HTTP adapter over the auth service. It translates
// requests and responses at the boundary; the use cases themselves take and
// return plain data.
package server

import (
	"net/http"

	"github.com/bloghq/auth-service/auth"
	"github.com/bloghq/auth-service/internal/config"
	"github.com/rs/zerolog"
)

const (
	RouteRegister     = "/api/v1/auth/register"
	RouteLogin        = "/api/v1/auth/login"
	RouteRefreshToken = "/api/v1/auth/refresh-token"
	RouteLogout       = "/api/v1/auth/logout"
)

type Server struct {
	mux    *http.ServeMux
	auth   *auth.Service
	config *config.Config
	log    zerolog.Logger
}

func New(cfg *config.Config, authService *auth.Service, log zerolog.Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		auth:   authService,
		config: cfg,
		log:    log,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	mw := []func(http.HandlerFunc) http.HandlerFunc{
		s.RecoverMiddleware,
		s.LoggingMiddleware,
	}

	s.mux.HandleFunc("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), mw...))
	s.mux.HandleFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), mw...))
	s.mux.HandleFunc("POST "+RouteRefreshToken, ChainMiddleware(s.RefreshTokenHandler(), mw...))
	s.mux.HandleFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), mw...))
}
