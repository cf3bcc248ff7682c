package services

import (
	"crypto/subtle"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials describes the single operator account and the static key
// accepted by the read API. PasswordHash, when set, wins over Password.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
	APIKey       string
}

type AuthService struct {
	context.DefaultService

	jwtSvc       *JWTService
	creds        AdminCredentials
	cookieSecure bool
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func NewAuthService(jwtSvc *JWTService, creds AdminCredentials, cookieSecure bool) *AuthService {
	return &AuthService{jwtSvc: jwtSvc, creds: creds, cookieSecure: cookieSecure}
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.jwtSvc = ctx.Service(JWT_SVC).(*JWTService)
	svc.creds = AdminCredentials{
		Email:        settings.AdminEmail,
		Password:     settings.AdminPassword,
		PasswordHash: settings.AdminPasswordHash,
		APIKey:       settings.MessagesAPIKey,
	}
	svc.cookieSecure = settings.CookieSecure

	if svc.creds.Email == "" || (svc.creds.Password == "" && svc.creds.PasswordHash == "") {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is unset, admin login is disabled")
	}
	if svc.creds.APIKey == "" {
		log.Warn("MESSAGES_API_KEY is unset, API key access is disabled")
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	return nil
}

// Authenticate checks the submitted pair and issues a session token.
func (svc *AuthService) Authenticate(email, password string) (*dto.TokenInfo, error) {
	if !svc.credentialsMatch(email, password) {
		RecordLoginAttempt(false)
		log.WithField("email", email).Warn("Rejected admin login")
		return nil, shared.NewInvalidCredentialsError()
	}

	token, err := svc.jwtSvc.IssueAdminToken(svc.creds.Email)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	RecordLoginAttempt(true)
	log.WithField("email", svc.creds.Email).Info("Admin logged in")
	return token, nil
}

// credentialsMatch never matches when the account is unconfigured and
// compares both fields regardless of the first result.
func (svc *AuthService) credentialsMatch(email, password string) bool {
	if svc.creds.Email == "" || (svc.creds.Password == "" && svc.creds.PasswordHash == "") {
		return false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(svc.creds.Email)) == 1

	var passwordOK bool
	if svc.creds.PasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(svc.creds.PasswordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(svc.creds.Password)) == 1
	}

	return emailOK && passwordOK
}

// ValidAPIKey is false for every key while no key is configured.
func (svc *AuthService) ValidAPIKey(key string) bool {
	if svc.creds.APIKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(svc.creds.APIKey)) == 1
}

// sessionToken reads the auth cookie, falling back to a bearer header.
func (svc *AuthService) sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(shared.AuthCookieName); token != "" {
		return token
	}
	token, err := svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return ""
	}
	return token
}

// IsAuthenticated reports whether the request carries a valid admin session.
func (svc *AuthService) IsAuthenticated(c *fiber.Ctx) bool {
	_, err := svc.jwtSvc.VerifyAdminToken(svc.sessionToken(c))
	return err == nil
}

func (svc *AuthService) SessionTTL() time.Duration {
	return svc.jwtSvc.AccessTokenDuration
}

func (svc *AuthService) CookieSecure() bool {
	return svc.cookieSecure
}

// RequireAdmin lets a request through with either a valid X-API-Key or an
// admin session.
func (svc *AuthService) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc.ValidAPIKey(c.Get(shared.APIKeyHeader)) {
			c.Locals(shared.AdminIdentity, "api_key")
			return c.Next()
		}

		if claims, err := svc.jwtSvc.VerifyAdminToken(svc.sessionToken(c)); err == nil {
			c.Locals(shared.AdminIdentity, claims.Email)
			return c.Next()
		}

		log.WithFields(log.Fields{
			"path":   c.Path(),
			"client": GetClientID(c),
		}).Warn("Unauthorized admin read")
		return shared.NewUnauthorizedError()
	}
}
