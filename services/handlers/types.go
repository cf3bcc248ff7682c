package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/model"
)

type SubmissionServiceInterface interface {
	SubmitContact(ctx context.Context, req dto.ContactRequest) model.ContactMessage
	SubmitConsultation(ctx context.Context, req dto.ConsultationRequest) model.ConsultationRequest
	ListMessages(ctx context.Context) []model.ContactMessage
	ListConsultations(ctx context.Context) []model.ConsultationRequest
	RecordRejection(kind, reason string)
}

type RecaptchaServiceInterface interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) bool
}

type AuthServiceInterface interface {
	Authenticate(email, password string) (*dto.TokenInfo, error)
	IsAuthenticated(c *fiber.Ctx) bool
	SessionTTL() time.Duration
	CookieSecure() bool
}

type ChatServiceInterface interface {
	Forward(ctx context.Context, fwd dto.ChatForward) (int, []byte, error)
}

type StatusServiceInterface interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type ArchiveServiceInterface interface {
	Snapshot(ctx context.Context) (*dto.ArchiveResponse, error)
}
