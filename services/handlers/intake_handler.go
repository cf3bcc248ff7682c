package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	contactAcceptedMessage      = "Thank you! Your message has been received."
	consultationAcceptedMessage = "¡Consulta recibida! Te contactaré en menos de 24 horas."
	recaptchaFailedMessage      = "Recaptcha verification failed"
)

type IntakeHandler struct {
	submissionSvc SubmissionServiceInterface
	recaptchaSvc  RecaptchaServiceInterface
}

func NewIntakeHandler(submissionSvc SubmissionServiceInterface, recaptchaSvc RecaptchaServiceInterface) *IntakeHandler {
	return &IntakeHandler{
		submissionSvc: submissionSvc,
		recaptchaSvc:  recaptchaSvc,
	}
}

// @Summary Submit contact form
// @Description Store a contact message. Limited per client; requires a reCAPTCHA token when verification is enabled.
// @Tags intake
// @Accept json
// @Produce json
// @Param contactRequest body dto.ContactRequest true "Contact form"
// @Success 200 {object} shared.SuccessResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/v1/contact [post]
func (h *IntakeHandler) Contact(c *fiber.Ctx) error {
	req, err := dto.ParseContact(c.Body())
	if err != nil {
		h.rejected(shared.KindMessages, err)
		return err
	}

	if h.recaptchaSvc.Enabled() {
		if !h.recaptchaSvc.Verify(c.UserContext(), req.RecaptchaToken, "") {
			h.submissionSvc.RecordRejection(shared.KindMessages, "recaptcha")
			return shared.NewBadRequestError(nil, recaptchaFailedMessage)
		}
	}

	record := h.submissionSvc.SubmitContact(c.UserContext(), *req)
	log.WithFields(log.Fields{
		"id":           record.ID,
		"project_type": record.ProjectType,
	}).Info("Contact message accepted")

	return shared.ResponseSuccess(c, contactAcceptedMessage)
}

// @Summary Submit technical consultation form
// @Description Store a consultation request. Limited per client.
// @Tags intake
// @Accept json
// @Produce json
// @Param consultationRequest body dto.ConsultationRequest true "Consultation form"
// @Success 200 {object} shared.SuccessResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/v1/consulta-tecnica [post]
func (h *IntakeHandler) Consultation(c *fiber.Ctx) error {
	req, err := dto.ParseConsultation(c.Body())
	if err != nil {
		h.rejected(shared.KindConsultations, err)
		return err
	}

	record := h.submissionSvc.SubmitConsultation(c.UserContext(), *req)
	log.WithFields(log.Fields{
		"id":      record.ID,
		"urgency": record.Urgency,
	}).Info("Consultation request accepted")

	return shared.ResponseSuccess(c, consultationAcceptedMessage)
}

func (h *IntakeHandler) rejected(kind string, err error) {
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode >= fiber.StatusInternalServerError {
		return
	}
	h.submissionSvc.RecordRejection(kind, appErr.Code)
	log.WithFields(log.Fields{
		"kind":   kind,
		"fields": dto.FormatValidationErrors(err),
	}).Debug("Submission rejected")
}
