// Package auth composes the registration, login, refresh and logout use
// cases for the blogging platform's API. It validates preconditions, drives
// the token issuer and the repositories, and returns either a success
// payload or a typed *Error from the client-facing taxonomy.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/bloghq/auth-service/token"
	"github.com/bloghq/auth-service/token/refresh"
	"github.com/bloghq/auth-service/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// RegisterInput is the registration payload. Role is optional and defaults
// to user.
type RegisterInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     users.Role `json:"role,omitempty"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the identity shape returned to clients. It never carries
// the password hash.
type UserSummary struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     users.Role `json:"role"`
}

// Session is the result of a successful registration or login. The access
// token goes in the response body; the refresh token is set as a cookie by
// the transport layer.
type Session struct {
	User         UserSummary
	AccessToken  string
	RefreshToken string
}

// Repos holds all repository dependencies for the Service.
type Repos struct {
	Users         users.Repo   // Repository for identity data
	RefreshTokens refresh.Repo // Store for issued refresh tokens
}

// Service implements the auth use cases.
type Service struct {
	repos          Repos
	issuer         *token.Issuer
	adminAllowlist map[string]struct{}
	bcryptCost     int
	log            zerolog.Logger
	nowTime        func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithAdminAllowlist sets the emails permitted to self-register as admin.
func WithAdminAllowlist(emails []string) ServiceOption {
	return func(s *Service) {
		for _, email := range emails {
			s.adminAllowlist[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
		}
	}
}

// WithBcryptCost sets the bcrypt cost used when hashing new passwords.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService initializes the auth Service with required dependencies.
// Optional configuration can be provided via options.
func NewService(repos Repos, issuer *token.Issuer, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.RefreshTokens == nil {
		return nil, errors.New("[NewService] RefreshTokens repo is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] issuer is required")
	}

	s := &Service{
		repos:          repos,
		issuer:         issuer,
		adminAllowlist: make(map[string]struct{}),
		log:            zerolog.Nop(),
		nowTime:        time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Register creates a new identity and opens a session for it. Role admin is
// gated by the configured allow-list.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := ValidateRegisterInput(in); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = users.RoleUser
	}
	if role == users.RoleAdmin && !s.adminAllowed(in.Email) {
		return nil, authorizationError("you cannot register as an admin")
	}

	username, err := users.GenUsername()
	if err != nil {
		return nil, serverError(err)
	}

	hash, err := users.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, serverError(errors.Wrap(err, "[Service.Register] HashPassword"))
	}

	user, err := s.repos.Users.Create(ctx, &users.User{
		Username:     username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.nowTime(),
	})
	if err != nil {
		if errors.Is(err, users.ErrDuplicate) {
			return nil, conflictError("email or username already in use")
		}
		return nil, serverError(errors.Wrap(err, "[Service.Register] Users.Create"))
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", user.Username).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("user registered")
	return session, nil
}

// Login verifies credentials and opens a session. A missing account yields
// NotFound; a wrong password yields a generic AuthenticationError that does
// not reveal which factor failed.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := ValidateLoginInput(in); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, notFoundError("user not found")
		}
		return nil, serverError(errors.Wrap(err, "[Service.Login] Users.GetByEmail"))
	}

	if !users.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, authenticationError("invalid email or password")
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", user.Username).
		Str("email", user.Email).
		Msg("user logged in")
	return session, nil
}

// Refresh mints a new access token for the subject of a presented refresh
// token. The token must both verify (signature, expiry) and still exist in
// the store; either failing yields an AuthenticationError. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", authenticationError("invalid refresh token")
	}

	exists, err := s.repos.RefreshTokens.Exists(ctx, refreshToken)
	if err != nil {
		return "", serverError(errors.Wrap(err, "[Service.Refresh] RefreshTokens.Exists"))
	}
	if !exists {
		return "", authenticationError("invalid refresh token")
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return "", authenticationError("refresh token has expired, please log in again")
		}
		return "", authenticationError("invalid refresh token")
	}

	accessToken, err := s.issuer.IssueAccessToken(claims.UserID)
	if err != nil {
		return "", serverError(errors.Wrap(err, "[Service.Refresh] IssueAccessToken"))
	}
	return accessToken, nil
}

// Logout revokes the presented refresh token. Deleting a token that is
// already gone is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repos.RefreshTokens.Delete(ctx, refreshToken); err != nil {
		return serverError(errors.Wrap(err, "[Service.Logout] RefreshTokens.Delete"))
	}
	return nil
}

// openSession issues a token pair and persists the refresh token record.
// A store conflict on the token value is retried once with a fresh token.
func (s *Service) openSession(ctx context.Context, user *users.User) (*Session, error) {
	accessToken, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, serverError(errors.Wrap(err, "[Service.openSession] IssueAccessToken"))
	}

	var refreshToken string
	for attempt := 0; attempt < 2; attempt++ {
		refreshToken, err = s.issuer.IssueRefreshToken(user.ID)
		if err != nil {
			return nil, serverError(errors.Wrap(err, "[Service.openSession] IssueRefreshToken"))
		}
		err = s.repos.RefreshTokens.Create(ctx, refreshToken, user.ID)
		if err == nil {
			break
		}
		if !errors.Is(err, refresh.ErrConflict) {
			return nil, serverError(errors.Wrap(err, "[Service.openSession] RefreshTokens.Create"))
		}
	}
	if err != nil {
		return nil, serverError(errors.Wrap(err, "[Service.openSession] refresh token conflict"))
	}

	return &Session{
		User: UserSummary{
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) adminAllowed(email string) bool {
	_, ok := s.adminAllowlist[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
