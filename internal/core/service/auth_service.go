package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/api/metrics"
	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins. Implementations must be safe
// for concurrent use; a nil limiter disables throttling.
type LoginLimiter interface {
	// Allow returns domain.ErrTooManyAttempts when the account is throttled.
	Allow(ctx context.Context, username string) error
	// RecordFailure counts one failed attempt against the account.
	RecordFailure(ctx context.Context, username string)
}

// AuthService composes the user registry, password hashing, and token
// issuance into the login and fixed-role registration flows.
type AuthService struct {
	users   *UserRegistry
	issuer  *TokenIssuer
	limiter LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(users *UserRegistry, issuer *TokenIssuer, limiter LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, limiter: limiter, logger: logger}
}

// Login authenticates a user and returns a signed token plus the user view.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, username); err != nil {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, err
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.users.VerifyCredentials(user, password) {
		s.recordFailure(ctx, username)
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	s.users.RecordLogin(ctx, username)

	token, err := s.issuer.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", username).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// Register creates a user with the role fixed by the calling endpoint and
// issues a token exactly as Login does. Replaying the same username fails
// with ErrUserExists.
func (s *AuthService) Register(ctx context.Context, role string, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Username == "" || in.Password == "" || !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.Create(ctx, role, ports.CreateUserInput{
		Username: in.Username,
		Password: in.Password,
		Email:    in.Email,
		Name:     in.Name,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", role).Msg("registration succeeded")
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		s.limiter.RecordFailure(ctx, username)
	}
}
