package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reinaldotineo/portfolio_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Authenticate(t *testing.T) {
	svc := NewAuthService(NewJWTService("secret", time.Hour), AdminCredentials{
		Email:    "admin@example.com",
		Password: "pw",
	}, false)

	token, err := svc.Authenticate("admin@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	for _, pair := range [][2]string{
		{"admin@example.com", "wrong"},
		{"someone@example.com", "pw"},
		{"", ""},
	} {
		_, err := svc.Authenticate(pair[0], pair[1])
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestAuthService_PasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(NewJWTService("secret", time.Hour), AdminCredentials{
		Email:        "admin@example.com",
		Password:     "plain-pw",
		PasswordHash: string(hash),
	}, false)

	_, err = svc.Authenticate("admin@example.com", "hashed-pw")
	assert.NoError(t, err)

	_, err = svc.Authenticate("admin@example.com", "plain-pw")
	assert.Error(t, err, "the hash wins over the plain password")
}

func TestAuthService_UnconfiguredNeverMatches(t *testing.T) {
	svc := NewAuthService(NewJWTService("secret", time.Hour), AdminCredentials{}, false)

	_, err := svc.Authenticate("", "")
	assert.Error(t, err)
	assert.False(t, svc.ValidAPIKey(""))
	assert.False(t, svc.ValidAPIKey("anything"))
}

func TestAuthService_ValidAPIKey(t *testing.T) {
	svc := NewAuthService(NewJWTService("secret", time.Hour), AdminCredentials{APIKey: "k3y"}, false)

	assert.True(t, svc.ValidAPIKey("k3y"))
	assert.False(t, svc.ValidAPIKey("k3y "))
	assert.False(t, svc.ValidAPIKey("K3Y"))
	assert.False(t, svc.ValidAPIKey(""))
}

func TestRequireAdmin_RejectsNonAdminSession(t *testing.T) {
	env := newTestEnv(t)

	token := signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret), &AdminClaims{
		Email: testAdminEmail,
		Role:  "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(env.clock.Now().Add(time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
	req.AddCookie(&http.Cookie{Name: shared.AuthCookieName, Value: token})
	resp, _ := env.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	issued, err := env.jwt.IssueAdminToken(testAdminEmail)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil)
	req.AddCookie(&http.Cookie{Name: shared.AuthCookieName, Value: issued.Token})
	resp, _ = env.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
