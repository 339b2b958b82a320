package server

import (
	"encoding/json"
	"net/http"

	"github.com/bloghq/auth-service/auth"
	"github.com/bloghq/auth-service/users"
	pkgerrors "github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sessionResponse struct {
	User        auth.UserSummary `json:"user"`
	AccessToken string           `json:"accessToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterHandler creates an account and opens a session. The refresh token
// travels only in the cookie, never in the body.
func (s *Server) RegisterHandler() http.HandlerFunc {
	type request struct {
		Email    string     `json:"email"`
		Password string     `json:"password"`
		Role     users.Role `json:"role,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !s.decodeBody(w, r, &req) {
			return
		}

		session, err := s.auth.Register(r.Context(), auth.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.setRefreshCookie(w, session.RefreshToken)
		writeJSON(w, http.StatusCreated, sessionResponse{
			User:        session.User,
			AccessToken: session.AccessToken,
		})
	}
}

// LoginHandler verifies credentials and opens a session.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginInput
		if !s.decodeBody(w, r, &req) {
			return
		}

		session, err := s.auth.Login(r.Context(), req)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.setRefreshCookie(w, session.RefreshToken)
		writeJSON(w, http.StatusOK, sessionResponse{
			User:        session.User,
			AccessToken: session.AccessToken,
		})
	}
}

// RefreshTokenHandler exchanges the refresh token cookie for a new access
// token.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, err := s.auth.Refresh(r.Context(), s.refreshCookieValue(r))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: accessToken})
	}
}

// LogoutHandler revokes the refresh token and clears the cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Logout(r.Context(), s.refreshCookieValue(r)); err != nil {
			s.writeError(w, err)
			return
		}
		s.clearRefreshCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) refreshCookieValue(r *http.Request) string {
	cookie, err := r.Cookie(s.config.Auth.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Auth.CookieName,
		Value:    refreshToken,
		Path:     "/api/v1/auth",
		MaxAge:   int(s.config.Auth.RefreshTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   s.config.IsProduction(), // Use secure cookies in production
		SameSite: http.SameSiteStrictMode, // Prevent CSRF attacks
	})
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Auth.CookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Code:    string(auth.KindValidation),
			Message: "invalid request body",
		})
		return false
	}
	return true
}

// writeError maps a use-case error onto the wire taxonomy. Expected domain
// errors pass through with their message; anything else is logged and
// surfaced as a generic ServerError.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var authErr *auth.Error
	if pkgerrors.As(err, &authErr) && authErr.Kind != auth.KindServer {
		writeJSON(w, statusForKind(authErr.Kind), errorBody{
			Code:    string(authErr.Kind),
			Message: authErr.Message,
		})
		return
	}

	s.log.Error().Err(err).Msg("unexpected error")
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Code:    string(auth.KindServer),
		Message: "internal server error",
	})
}

func statusForKind(kind auth.Kind) int {
	switch kind {
	case auth.KindNotFound:
		return http.StatusNotFound
	case auth.KindAuthentication:
		return http.StatusUnauthorized
	case auth.KindAuthorization:
		return http.StatusForbidden
	case auth.KindConflict:
		return http.StatusConflict
	case auth.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
