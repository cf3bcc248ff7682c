package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

const DefaultJWTSecret = "default-secret"

var (
	ErrMissingAuthHeader = errors.New("authorization header is missing")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid or expired token")
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration time.Duration
	jwtSecretKey        string
	now                 func() time.Time
}

// AdminClaims is the session token payload.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

// NewJWTService is used outside the service container.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		AccessTokenDuration: ttl,
		jwtSecretKey:        secret,
		now:                 time.Now,
	}
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()

	svc.AccessTokenDuration = settings.SessionTTL
	svc.jwtSecretKey = ResolveJWTSecret(settings)
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// ResolveJWTSecret prefers JWT_SECRET, then MESSAGES_API_KEY, then the
// built-in default.
func ResolveJWTSecret(settings *Settings) string {
	switch {
	case settings.JWTSecret != "":
		return settings.JWTSecret
	case settings.MessagesAPIKey != "":
		return settings.MessagesAPIKey
	default:
		log.Warn("JWT_SECRET and MESSAGES_API_KEY are unset, signing sessions with the default secret")
		return DefaultJWTSecret
	}
}

// IssueAdminToken signs a session token for the admin with the configured lifetime.
func (svc *JWTService) IssueAdminToken(email string) (*dto.TokenInfo, error) {
	now := svc.now()
	claims := &AdminClaims{
		Email: email,
		Role:  shared.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.TokenInfo{
		Token:     tokenString,
		ExpiresIn: int64(svc.AccessTokenDuration.Seconds()),
	}, nil
}

// VerifyAdminToken accepts only unexpired HS256 tokens carrying the admin role.
func (svc *JWTService) VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, svc.getJWTKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(svc.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != shared.AdminRole {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthHeader
	}

	return strings.TrimSpace(token), nil
}
