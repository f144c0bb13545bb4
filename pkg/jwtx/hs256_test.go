package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "voyago-test"

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("too-short"), testIssuer)
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	claims := NewSessionClaims("01K3Z6BAD0EXAMPLE0USER0ID0", testIssuer, DefaultSessionTTL, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")), "compact JWT form")

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01K3Z6BAD0EXAMPLE0USER0ID0", got.Subject)
	require.Equal(t, testIssuer, got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be set")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)
	other, err := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer)
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("user", testIssuer, DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	_, err = h.Verify("definitely.not.a-jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "someone-else")
	require.NoError(t, err)
	verifier, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("user", "someone-else", DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestTokenExpiryWindow(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		// Issued 59 minutes ago with a 1 hour TTL.
		issued := time.Now().UTC().Add(-59 * time.Minute)
		token, err := h.Sign(NewSessionClaims("user", testIssuer, DefaultSessionTTL, issued))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.NoError(t, err)
	})

	t.Run("invalid just after expiry", func(t *testing.T) {
		issued := time.Now().UTC().Add(-61 * time.Minute)
		token, err := h.Sign(NewSessionClaims("user", testIssuer, DefaultSessionTTL, issued))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})
}
