package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste-com-tamanho-suficiente"

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	issued, err := issuer.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Len(t, issued.TokenID, 36)

	claims, err := issuer.Parse(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, issued.TokenID, claims.TokenID)
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	a, err := issuer.Issue(1)
	require.NoError(t, err)
	b, err := issuer.Issue(1)
	require.NoError(t, err)

	assert.NotEqual(t, a.TokenID, b.TokenID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuedAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret, time.Hour).WithClock(func() time.Time { return issuedAt })

	issued, err := issuer.Issue(1)
	require.NoError(t, err)

	issuer.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })

	_, err = issuer.Parse(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	other, err := NewTokenIssuer("outro-segredo", time.Hour).Issue(1)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
		ID:      "abc",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"assinatura de outro segredo": other.Token,
		"algoritmo none":              noneToken,
		"sem subject":                 noSubject,
		"sem expiração":               noExpiry,
		"malformado":                  "nao-e-um-jwt",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("esperava ErrInvalidToken, obteve %v", err)
			}
		})
	}
}
