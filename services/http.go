package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/reinaldotineo/portfolio_api/docs"
	"github.com/reinaldotineo/portfolio_api/services/handlers"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

const maxRequestBody = 64 * 1024

type HttpService struct {
	context.DefaultService

	settings *Settings
	app      *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	svc.settings = ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.app = NewApp(AppOptions{
		Settings:    svc.settings,
		RateLimit:   svc.Service(RATE_LIMIT_SVC).(*RateLimitService),
		Auth:        svc.Service(AUTH_SVC).(*AuthService),
		Submissions: svc.Service(SUBMISSION_SVC).(*SubmissionService),
		Recaptcha:   svc.Service(RECAPTCHA_SVC).(*RecaptchaService),
		Chat:        svc.Service(CHAT_SVC).(*ChatService),
		Status:      svc.Service(STATUS_SVC).(*StatusService),
		Archive:     svc.Service(ARCHIVE_SVC).(*ArchiveService),
		Metrics:     true,
	})

	log.WithField("port", svc.settings.HTTPPort).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.settings.HTTPPort))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// AppOptions carries everything the router needs.
type AppOptions struct {
	Settings    *Settings
	RateLimit   *RateLimitService
	Auth        *AuthService
	Submissions handlers.SubmissionServiceInterface
	Recaptcha   handlers.RecaptchaServiceInterface
	Chat        handlers.ChatServiceInterface
	Status      handlers.StatusServiceInterface
	Archive     handlers.ArchiveServiceInterface
	Metrics     bool
}

// NewApp builds the fiber app with every route mounted.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               SERVICE_NAME,
		BodyLimit:             maxRequestBody,
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          ErrorHandler,
	})

	docs.SwaggerInfo.BasePath = ""
	app.Use(recover.New())

	if strings.EqualFold(opts.Settings.LogLevel, "TRACE") {
		app.Use(logger.New())
	}
	if opts.Metrics {
		app.Use(MonitoringMiddleware())
	}

	app.Use(cors.New(corsConfig(opts.Settings.CORSOrigins)))

	intake := handlers.NewIntakeHandler(opts.Submissions, opts.Recaptcha)
	admin := handlers.NewAdminHandler(opts.Submissions, opts.Archive)
	auth := handlers.NewAuthHandler(opts.Auth)
	proxy := handlers.NewProxyHandler(opts.Chat, opts.Status)

	requireAdmin := opts.Auth.RequireAdmin()

	//Validation endpoints
	app.Get("/ping", ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", ping)

	v1.Post("/contact", opts.RateLimit.RateLimit(shared.EndpointContact), intake.Contact)
	v1.Post("/consulta-tecnica", opts.RateLimit.RateLimit(shared.EndpointConsultation), intake.Consultation)
	v1.Post("/intake/contact", opts.RateLimit.RateLimit(shared.EndpointContact), intake.Contact)
	v1.Post("/intake/consultation", opts.RateLimit.RateLimit(shared.EndpointConsultation), intake.Consultation)

	v1.Post("/auth/login", opts.RateLimit.RateLimit(shared.EndpointLogin), auth.Login)
	v1.Get("/auth/login", auth.Session)
	v1.Post("/auth/logout", auth.Logout)

	v1.Post("/chat", opts.RateLimit.RateLimit(shared.EndpointChat), proxy.Chat)
	v1.Get("/system-status", proxy.SystemStatus)

	v1.Get("/messages", requireAdmin, admin.Messages)
	v1.Get("/consulta-tecnica", requireAdmin, admin.Consultations)

	adminGroup := v1.Group("/admin", requireAdmin)
	adminGroup.Get("/messages", admin.Messages)
	adminGroup.Get("/consultations", admin.Consultations)
	adminGroup.Post("/archive", admin.Archive)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	return app
}

func corsConfig(origins string) cors.Config {
	config := cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," + shared.APIKeyHeader,
	}
	// Cookies need an explicit origin list.
	if origins != "" && origins != "*" {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	return config
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.SuccessResponse
// @Router /ping [get]
func ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseSuccess(c, "pong")
}

// ErrorHandler renders every error returned by a handler or middleware as
// {"error": message}. Anything that is not an AppError or fiber.Error is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		return shared.ResponseError(c, appErr.StatusCode, appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseError(c, fiberErr.Code, fiberErr.Message)
	}

	log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	return shared.ResponseInternalError(c)
}
