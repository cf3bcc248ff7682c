package main

import (
	"errors"
	"io/fs"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/reinaldotineo/portfolio_api/services"
	"github.com/rs/zerolog/log"
)

// @title Portfolio API
// @version 1.0
// @description Lead intake, admin read API and site proxies for the portfolio site.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	ctx, err := context.NewCtx(
		&services.ConfigService{},
		&services.MonitoringService{},
		&services.RedisService{},
		&services.DatabaseService{},
		&services.EmailService{},
		&services.MinIOService{},

		&services.JWTService{},
		&services.AuthService{},
		&services.RateLimitService{},
		&services.SubmissionService{},
		&services.RecaptchaService{},
		&services.ChatService{},
		&services.StatusService{},
		&services.ArchiveService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure services")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service stopped")
		return
	}
}
