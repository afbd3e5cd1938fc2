package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// MinSecretLength is the minimum length of the HMAC signing key.
const MinSecretLength = 32

// TokenService issues and validates bearer tokens bound to a username.
type TokenService interface {
	// Issue creates a signed token for subject, valid for the configured lifetime.
	Issue(ctx context.Context, subject string) (*Token, error)

	// Validate reports whether token carries a good signature, the expected
	// issuer, an unexpired exp claim and exactly expectedSubject as subject.
	// A token is still valid at its expiry instant. It never returns an error;
	// every failure is false.
	Validate(ctx context.Context, token, expectedSubject string) bool

	// ExtractSubject verifies the signature and algorithm and returns the
	// subject without checking expiry. Failures wrap ErrDecode.
	ExtractSubject(ctx context.Context, token string) (string, error)
}

// Token is an issued bearer token. It is never persisted.
type Token struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// hmacTokenService is an implementation of TokenService using HMAC-SHA256 signing.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	issuer        string
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService using HMAC-SHA256 signing.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	return newHMACTokenService(cfg, time.Now)
}

func newHMACTokenService(cfg config.AuthConfig, timeFunc func() time.Time) (*hmacTokenService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}
	if cfg.ClockSkew < 0 {
		return nil, fmt.Errorf("clock skew must not be negative, got %s", cfg.ClockSkew)
	}

	return &hmacTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: cfg.TokenLifetime(),
		issuer:        cfg.Issuer,
		timeFunc:      timeFunc,
		clockSkew:     cfg.ClockSkew,
	}, nil
}

// Issue implements TokenService.
func (s *hmacTokenService) Issue(ctx context.Context, subject string) (*Token, error) {
	log := logger.FromContext(ctx)

	if subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	// NumericDate has second precision; truncate so the returned times
	// match what a parser will read back.
	now := s.timeFunc().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.tokenLifetime)
	id := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        id,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return nil, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return &Token{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		ID:        id,
	}, nil
}

// Validate implements TokenService.
func (s *hmacTokenService) Validate(ctx context.Context, token, expectedSubject string) bool {
	if err := s.validate(token, expectedSubject); err != nil {
		logger.FromContext(ctx).Debug("token validation failed", "reason", err.Error())
		return false
	}
	return true
}

func (s *hmacTokenService) validate(token, expectedSubject string) error {
	if expectedSubject == "" {
		return ErrSubjectMismatch
	}

	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if claims.Issuer != s.issuer {
		return fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject != expectedSubject {
		return ErrSubjectMismatch
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}
	// Inclusive: valid at exactly exp, invalid from the next instant.
	if s.timeFunc().After(claims.ExpiresAt.Add(s.clockSkew)) {
		return ErrExpiredToken
	}
	return nil
}

// ExtractSubject implements TokenService.
func (s *hmacTokenService) ExtractSubject(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		logger.FromContext(ctx).Debug("token decode failed", "error", err)
		return "", err
	}
	return claims.Subject, nil
}

// parse checks structure, algorithm and signature only. Time-based claims
// are checked by validate so that expiry is inclusive of the exp instant.
func (s *hmacTokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: malformed token: %w", ErrDecode, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: invalid signature: %w", ErrDecode, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrDecode)
	}
	return claims, nil
}
