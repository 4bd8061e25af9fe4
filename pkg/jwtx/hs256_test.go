package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custdesk/custdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef") // 32 bytes

func newTestClaims(ttl time.Duration, issuer string, aud []string) jwtx.Claims {
	return jwtx.NewClaims(
		"01JD0user", "alice@example.com",
		[]string{"Admin", "Staff"},
		ttl,
		issuer, aud,
		time.Now().UTC(),
	)
}

func TestHS256RoundTrip(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(time.Hour, "customer-api", []string{"web"}))
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JD0user", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.ElementsMatch(t, []string{"Admin", "Staff"}, claims.Roles)
}

func TestHS256RejectsExpired(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(-time.Second, "customer-api", []string{"web"}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256RejectsMissingExpiry(t *testing.T) {
	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	// Signed with the right key but carrying no exp claim at all. Such a
	// token would otherwise never stop validating.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   "customer-api",
		"aud":   "web",
		"sub":   "01JD0user",
		"email": "alice@example.com",
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestHS256RejectsTamperedSignature(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(time.Hour, "customer-api", []string{"web"}))
	require.NoError(t, err)

	// Swap a character in the signature segment, staying within the
	// base64url alphabet so the failure is cryptographic, not syntactic.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = verifier.Verify(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256RejectsWrongSecret(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	other := []byte("ffffffffffffffffffffffffffffffff")
	verifier, err := jwtx.NewCommonHS256(other, "customer-api", []string{"web"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(time.Hour, "customer-api", []string{"web"}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256RejectsCrossAudience(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"mobile"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(time.Hour, "customer-api", []string{"web"}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrAudience)
}

func TestHS256RejectsWrongIssuer(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	token, err := signer.Sign(newTestClaims(time.Hour, "someone-else", []string{"web"}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256RejectsMalformed(t *testing.T) {
	verifier, err := jwtx.NewCommonHS256(testSecret, "customer-api", []string{"web"})
	require.NoError(t, err)

	for _, tok := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c",
		"....",
		strings.Repeat("x", 4096),
	} {
		_, err := verifier.Verify(tok)
		require.Error(t, err, "token %q", tok)
	}
}

func TestHS256KeyStrengthEnforced(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := jwtx.NewSignerHS256(nil)
		require.ErrorIs(t, err, jwtx.ErrMissingKey)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := jwtx.NewSignerHS256([]byte("too-short"))
		require.ErrorIs(t, err, jwtx.ErrWeakKey)

		_, err = jwtx.NewCommonHS256([]byte("too-short"), "customer-api", nil)
		require.ErrorIs(t, err, jwtx.ErrWeakKey)
	})
}
