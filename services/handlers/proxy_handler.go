package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

// ProxyHandler fronts the two upstream services the site reads from.
type ProxyHandler struct {
	chatSvc   ChatServiceInterface
	statusSvc StatusServiceInterface
}

func NewProxyHandler(chatSvc ChatServiceInterface, statusSvc StatusServiceInterface) *ProxyHandler {
	return &ProxyHandler{
		chatSvc:   chatSvc,
		statusSvc: statusSvc,
	}
}

// @Summary Ask the assistant
// @Description Forward a question to the AI backend and relay its answer
// @Tags chat
// @Accept json
// @Produce json
// @Param chatRequest body dto.ChatRequest true "Question"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/v1/chat [post]
func (h *ProxyHandler) Chat(c *fiber.Ctx) error {
	req, err := dto.ParseChat(c.Body())
	if err != nil {
		return err
	}

	status, body, err := h.chatSvc.Forward(c.UserContext(), req.ToForward())
	if err != nil {
		return shared.NewInternalError(err)
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		log.WithField("status", status).Warn("AI service returned an error")
		return shared.ResponseErrorDetails(c, status, "AI service error", string(body))
	}

	return shared.ResponseRawJSON(c, status, body)
}

// @Summary Infrastructure status
// @Description Relay the current system status payload
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/v1/system-status [get]
func (h *ProxyHandler) SystemStatus(c *fiber.Ctx) error {
	body, err := h.statusSvc.Fetch(c.UserContext())
	if err != nil {
		return shared.NewAppError(fiber.StatusInternalServerError, shared.CodeInternalError, "Failed to fetch system status", err)
	}
	return shared.ResponseRawJSON(c, fiber.StatusOK, body)
}
