package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates JWTs signed using HMAC-SHA-256 with the shared
// secret. All checks are conjunctive: signature, issuer, audience and
// expiry must each pass for the token to be accepted.
type HS256Verifier struct {
	secret []byte
	issuer string
	aud    []string
}

// NewVerifierHS256 creates a verifier from the shared symmetric secret.
// It applies the same minimum-entropy rule as the signer so a weak key is
// caught at startup on whichever side is misconfigured.
func NewVerifierHS256(secret []byte, issuer string, aud []string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrMissingKey
	}
	if len(secret) < HS256MinKeyBytes {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakKey, len(secret), HS256MinKeyBytes)
	}

	return &HS256Verifier{secret: secret, issuer: issuer, aud: aud}, nil
}

// Verify validates the JWT string and returns its parsed Claims. Malformed
// input of any shape maps to ErrMalformed, never a panic.
func (v *HS256Verifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// A token without an exp claim would otherwise validate forever.
		jwt.WithExpirationRequired(),
		// Expiry is enforced with zero leeway; skew between the two
		// tiers is an ops problem, not a validation concession.
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}

// mapParseError folds the jwt library's error tree into our typed set.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrInvalidKeyType):
		return ErrAlgMismatch
	default:
		return ErrMalformed
	}
}
