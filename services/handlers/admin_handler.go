package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
)

type AdminHandler struct {
	submissionSvc SubmissionServiceInterface
	archiveSvc    ArchiveServiceInterface
}

func NewAdminHandler(submissionSvc SubmissionServiceInterface, archiveSvc ArchiveServiceInterface) *AdminHandler {
	return &AdminHandler{
		submissionSvc: submissionSvc,
		archiveSvc:    archiveSvc,
	}
}

// @Summary List contact messages (Admin)
// @Description Every stored contact message in submission order
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Security CookieAuth
// @Success 200 {object} dto.MessagesResponse
// @Failure 401 {object} shared.ErrorResponse
// @Router /api/v1/admin/messages [get]
func (h *AdminHandler) Messages(c *fiber.Ctx) error {
	messages := h.submissionSvc.ListMessages(c.UserContext())
	return shared.ResponseOK(c, dto.MessagesResponse{Messages: messages})
}

// @Summary List consultation requests (Admin)
// @Description Every stored consultation request in submission order
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Security CookieAuth
// @Success 200 {object} dto.ConsultationsResponse
// @Failure 401 {object} shared.ErrorResponse
// @Router /api/v1/admin/consultations [get]
func (h *AdminHandler) Consultations(c *fiber.Ctx) error {
	consultations := h.submissionSvc.ListConsultations(c.UserContext())
	return shared.ResponseOK(c, dto.ConsultationsResponse{Consultations: consultations})
}

// @Summary Archive leads (Admin)
// @Description Upload both collections to object storage and return presigned links
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Security CookieAuth
// @Success 200 {object} dto.ArchiveResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 503 {object} shared.ErrorResponse
// @Router /api/v1/admin/archive [post]
func (h *AdminHandler) Archive(c *fiber.Ctx) error {
	resp, err := h.archiveSvc.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
