package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("acquirer-01", testSecret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "acquirer-01", claims.ClientID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestGenerateToken_RequiresClientID(t *testing.T) {
	_, err := GenerateToken("", testSecret, time.Hour)
	require.ErrorIs(t, err, ErrMissingClientID)
}

func TestValidateToken(t *testing.T) {
	validToken, err := GenerateToken("acquirer-01", testSecret, 24*time.Hour)
	require.NoError(t, err)

	expiredToken, err := GenerateToken("acquirer-01", testSecret, -1*time.Hour)
	require.NoError(t, err)

	foreignIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "acquirer-01",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreignToken, err := foreignIssuer.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  Issuer,
		Subject: "acquirer-01",
	})
	noExpiryToken, err := noExpiry.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubjectToken, err := noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		secret    string
		wantErrIs error
	}{
		{name: "expired token", token: expiredToken, secret: testSecret, wantErrIs: jwt.ErrTokenExpired},
		{name: "wrong secret", token: validToken, secret: "wrong-secret", wantErrIs: jwt.ErrTokenSignatureInvalid},
		{name: "malformed token", token: "not.a.valid.jwt", secret: testSecret, wantErrIs: jwt.ErrTokenMalformed},
		{name: "empty token", token: "", secret: testSecret, wantErrIs: jwt.ErrTokenMalformed},
		{name: "foreign issuer", token: foreignToken, secret: testSecret, wantErrIs: jwt.ErrTokenInvalidIssuer},
		{name: "missing expiry", token: noExpiryToken, secret: testSecret, wantErrIs: jwt.ErrTokenRequiredClaimMissing},
		{name: "missing subject", token: noSubjectToken, secret: testSecret, wantErrIs: ErrMissingClientID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, tc.secret)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErrIs)
		})
	}
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "acquirer-01",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	require.Error(t, err)
}

func TestClientIDContext(t *testing.T) {
	_, ok := ClientIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = ClientIDFromContext(ContextWithClientID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := ClientIDFromContext(ContextWithClientID(context.Background(), "acquirer-01"))
	assert.True(t, ok)
	assert.Equal(t, "acquirer-01", id)
}
