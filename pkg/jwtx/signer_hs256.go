package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256MinKeyBytes is the minimum accepted secret length. HMAC-SHA-256
// keys below 256 bits undercut the signature strength.
const HS256MinKeyBytes = 32

// HS256Signer implements the Signer interface using HMAC-SHA-256 with a
// symmetric secret shared between issuer and validator.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingKey
	}
	if len(secret) < HS256MinKeyBytes {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrWeakKey, len(secret), HS256MinKeyBytes)
	}

	return &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes claims and turns them into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
