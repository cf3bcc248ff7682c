package services

import (
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Settings is every value the process reads from its environment.
type Settings struct {
	HTTPPort       int    `envconfig:"HTTP_PORT" default:"8000"`
	PrometheusPort int    `envconfig:"PROMETHEUS_PORT" default:"2112"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
	CORSOrigins    string `envconfig:"CORS_ORIGINS" default:"*"`

	DataDir     string `envconfig:"DATA_DIR" default:"./data"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	DBDatabase  string `envconfig:"DB_DATABASE" default:"leads.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	RateLimitBackend string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"`
	RateLimitIntake  int           `envconfig:"RATE_LIMIT_INTAKE" default:"3"`
	RateLimitChat    int           `envconfig:"RATE_LIMIT_CHAT" default:"10"`
	RateLimitLogin   int           `envconfig:"RATE_LIMIT_LOGIN" default:"10"`
	RateLimitWindow  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AdminEmail        string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword     string        `envconfig:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	MessagesAPIKey    string        `envconfig:"MESSAGES_API_KEY"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure      bool          `envconfig:"COOKIE_SECURE" default:"false"`

	AIServiceURL       string        `envconfig:"AI_SERVICE_URL" default:"https://api.reinaldotineo.online"`
	AIServiceToken     string        `envconfig:"AI_SERVICE_TOKEN"`
	RecaptchaSecretKey string        `envconfig:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string        `envconfig:"RECAPTCHA_VERIFY_URL" default:"https://www.google.com/recaptcha/api/siteverify"`
	RecaptchaMinScore  float64       `envconfig:"RECAPTCHA_MIN_SCORE" default:"0.5"`
	SystemStatusURL    string        `envconfig:"SYSTEM_STATUS_URL" default:"https://api.reinaldotineo.online/app/api/system-status"`
	UpstreamTimeout    time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"15s"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	FromEmail    string `envconfig:"FROM_EMAIL"`
	FromName     string `envconfig:"FROM_NAME" default:"Portfolio"`
	NotifyEmail  string `envconfig:"NOTIFY_EMAIL"`

	MinioEndpoint   string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	MinioUseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	MinioBucketName string `envconfig:"MINIO_BUCKET_NAME" default:"portfolio-leads"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RedisEnabled reports whether any component was pointed at Redis.
func (s *Settings) RedisEnabled() bool {
	return s.RedisAddr != "" || strings.EqualFold(s.RateLimitBackend, "redis")
}

type ConfigService struct {
	context.DefaultService

	once     sync.Once
	settings *Settings
	err      error
}

const CONFIG_SVC = "config_svc"

func (svc *ConfigService) Id() string {
	return CONFIG_SVC
}

func (svc *ConfigService) Configure(ctx *context.Context) error {
	if _, err := svc.Load(); err != nil {
		return err
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ConfigService) Start() error {
	return nil
}

// Load parses the environment once; later calls return the cached result.
func (svc *ConfigService) Load() (*Settings, error) {
	svc.once.Do(func() {
		svc.settings, svc.err = LoadSettings()
		if svc.err != nil {
			return
		}
		level, err := log.ParseLevel(svc.settings.LogLevel)
		if err != nil {
			level = log.InfoLevel
		}
		log.SetLevel(level)
	})
	return svc.settings, svc.err
}

// Settings panics if the environment could not be parsed; Configure has
// already failed the process in that case.
func (svc *ConfigService) Settings() *Settings {
	s, err := svc.Load()
	if err != nil {
		panic(err)
	}
	return s
}
