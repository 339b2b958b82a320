// Package token mints and verifies the signed access and refresh tokens
// issued by the auth service. Access and refresh tokens are signed with
// distinct secrets so that compromise of one does not compromise the other.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrExpired means the signature verified but the expiry claim has passed.
	ErrExpired = errors.New("token expired")
	// ErrMalformed means the token is unparseable or its signature does not
	// verify. Callers must never conflate this with ErrExpired.
	ErrMalformed = errors.New("token malformed or signature invalid")
)

// Claims are the verified contents of an issued token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer mints access and refresh tokens bound to a subject identity.
// Issuance is stateless; persisting refresh tokens is the caller's concern.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
	nowFunc       func() time.Time
}

type IssuerOption func(*Issuer)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = now
	}
}

// WithIssuer sets the iss claim stamped into every token.
func WithIssuer(issuer string) IssuerOption {
	return func(i *Issuer) {
		i.issuer = issuer
	}
}

func NewIssuer(accessSecret, refreshSecret []byte, accessExpiry, refreshExpiry time.Duration, options ...IssuerOption) (*Issuer, error) {
	if len(accessSecret) == 0 {
		return nil, errors.New("[NewIssuer] access secret is required")
	}
	if len(refreshSecret) == 0 {
		return nil, errors.New("[NewIssuer] refresh secret is required")
	}
	if accessExpiry <= 0 || refreshExpiry <= 0 {
		return nil, errors.New("[NewIssuer] token expiries must be positive")
	}

	i := &Issuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		nowFunc:       time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	return i, nil
}

// IssueAccessToken mints a short-lived access token for the given subject.
func (i *Issuer) IssueAccessToken(userID string) (string, error) {
	return i.sign(userID, i.accessSecret, i.accessExpiry)
}

// IssueRefreshToken mints a long-lived refresh token for the given subject.
func (i *Issuer) IssueRefreshToken(userID string) (string, error) {
	return i.sign(userID, i.refreshSecret, i.refreshExpiry)
}

// VerifyAccessToken validates an access token against the access secret.
func (i *Issuer) VerifyAccessToken(raw string) (*Claims, error) {
	return Verify(raw, i.accessSecret, WithVerifyNowFunc(i.nowFunc))
}

// VerifyRefreshToken validates a refresh token against the refresh secret.
func (i *Issuer) VerifyRefreshToken(raw string) (*Claims, error) {
	return Verify(raw, i.refreshSecret, WithVerifyNowFunc(i.nowFunc))
}

// RefreshExpiry returns the configured refresh token lifetime.
func (i *Issuer) RefreshExpiry() time.Duration {
	return i.refreshExpiry
}

func (i *Issuer) sign(userID string, secret []byte, expiry time.Duration) (string, error) {
	now := i.nowFunc()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(), // jti: tokens for the same subject are always distinct
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", pkgerrors.Wrap(err, "[Issuer.sign] SignedString")
	}
	return signed, nil
}

type verifyConfig struct {
	nowFunc func() time.Time
}

type VerifyOption func(*verifyConfig)

// WithVerifyNowFunc sets the clock used for expiry checks (for testing).
func WithVerifyNowFunc(now func() time.Time) VerifyOption {
	return func(c *verifyConfig) {
		c.nowFunc = now
	}
}

// Verify validates the token's signature and expiry against the given secret
// and extracts its claims. Failures are distinguishable: ErrExpired for a
// valid signature past its expiry, ErrMalformed for everything else.
func Verify(raw string, secret []byte, options ...VerifyOption) (*Claims, error) {
	cfg := verifyConfig{nowFunc: time.Now}
	for _, opt := range options {
		opt(&cfg)
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(cfg.nowFunc),
	)
	parsed, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}
