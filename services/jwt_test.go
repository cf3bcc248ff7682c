package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reinaldotineo/portfolio_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := newFakeClock()
	svc := NewJWTService("secret", 24*time.Hour)
	svc.now = clock.Now

	info, err := svc.IssueAdminToken("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(86400), info.ExpiresIn)

	claims, err := svc.VerifyAdminToken(info.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, shared.AdminRole, claims.Role)
	assert.Equal(t, clock.Now().Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	clock.Advance(23 * time.Hour)
	_, err = svc.VerifyAdminToken(info.Token)
	assert.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	_, err = svc.VerifyAdminToken(info.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	clock := newFakeClock()
	svc := NewJWTService("secret", time.Hour)
	svc.now = clock.Now

	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour))}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"other secret", signClaims(t, jwt.SigningMethodHS256, []byte("other"),
			&AdminClaims{Email: "a@b.c", Role: shared.AdminRole, RegisteredClaims: valid})},
		{"wrong role", signClaims(t, jwt.SigningMethodHS256, []byte("secret"),
			&AdminClaims{Email: "a@b.c", Role: "viewer", RegisteredClaims: valid})},
		{"other hmac alg", signClaims(t, jwt.SigningMethodHS512, []byte("secret"),
			&AdminClaims{Email: "a@b.c", Role: shared.AdminRole, RegisteredClaims: valid})},
		{"no expiry", signClaims(t, jwt.SigningMethodHS256, []byte("secret"),
			&AdminClaims{Email: "a@b.c", Role: shared.AdminRole})},
		{"unsigned", signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType,
			&AdminClaims{Email: "a@b.c", Role: shared.AdminRole, RegisteredClaims: valid})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyAdminToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestResolveJWTSecret(t *testing.T) {
	assert.Equal(t, "jwt", ResolveJWTSecret(&Settings{JWTSecret: "jwt", MessagesAPIKey: "key"}))
	assert.Equal(t, "key", ResolveJWTSecret(&Settings{MessagesAPIKey: "key"}))
	assert.Equal(t, DefaultJWTSecret, ResolveJWTSecret(&Settings{}))
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, ErrMissingAuthHeader)

	_, err = svc.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidAuthHeader)

	_, err = svc.ExtractTokenFromHeader("Bearer   ")
	assert.ErrorIs(t, err, ErrInvalidAuthHeader)
}
