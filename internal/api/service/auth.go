package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/pkg/cryptox"
	"github.com/custdesk/custdesk/pkg/jwtx"
	"github.com/custdesk/custdesk/pkg/metricsx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// ErrInvalidCredentials covers every login failure: unknown email, wrong
// password, missing fields. Callers must not be able to tell which.
var ErrInvalidCredentials = errors.New("service: invalid credentials")

// AuthService issues and validates access tokens.
type AuthService struct {
	store    store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	issuer   string
	audience []string
	tokenTTL time.Duration

	now func() time.Time
}

// NewAuthService wires the auth service. tokenTTL <= 0 falls back to the
// package default.
func NewAuthService(
	st store.Store,
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer string,
	audience []string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = jwtx.DefaultAccessTokenTTL
	}
	return &AuthService{
		store:    st,
		signer:   signer,
		verifier: verifier,
		issuer:   issuer,
		audience: audience,
		tokenTTL: tokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login checks credentials and mints a signed token carrying the user's
// role names. Unknown user and wrong password take the same amount of
// observable shape: both land on ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		metricsx.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	}

	user, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash anyway so response timing doesn't leak
			// whether the account exists.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			metricsx.LoginAttempts.WithLabelValues("failed").Inc()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login failed", "email", email)
		metricsx.LoginAttempts.WithLabelValues("failed").Inc()
		return "", ErrInvalidCredentials
	}

	role, err := s.store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return "", fmt.Errorf("lookup role: %w", err)
	}

	claims := jwtx.NewClaims(
		user.ID, user.Email,
		[]string{role.Name},
		s.tokenTTL,
		s.issuer, s.audience,
		s.now(),
	)

	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	log.Info("login succeeded", "user_id", user.ID)
	metricsx.LoginAttempts.WithLabelValues("succeeded").Inc()
	return token, nil
}

// Validate checks a presented token and returns its claims. The typed
// jwtx errors pass through untouched so the handler can surface the kind.
func (s *AuthService) Validate(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		metricsx.TokenValidations.WithLabelValues(validationOutcome(err)).Inc()
		return jwtx.Claims{}, err
	}
	metricsx.TokenValidations.WithLabelValues("valid").Inc()
	return claims, nil
}

func validationOutcome(err error) string {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return "expired"
	case errors.Is(err, jwtx.ErrInvalidSig):
		return "bad_signature"
	case errors.Is(err, jwtx.ErrIssuer):
		return "bad_issuer"
	case errors.Is(err, jwtx.ErrAudience):
		return "bad_audience"
	default:
		return "malformed"
	}
}
