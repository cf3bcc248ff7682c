package dto

import (
	"strings"
	"time"

	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/shared"
)

const (
	MaxNameLength          = 100
	MaxEmailLength         = 254
	MaxContactMessage      = 5000
	MaxConsultationField   = 2000
	MaxProjectTypeLength   = 100
	MaxRecaptchaTokenBytes = 4096
)

type ContactRequest struct {
	Name           string `json:"name" validate:"required,max=100" example:"Ana"`
	Email          string `json:"email" validate:"required,max=254,simple_email" example:"ana@example.com"`
	ProjectType    string `json:"projectType" validate:"max=100" example:"web"`
	Message        string `json:"message" validate:"required,max=5000" example:"Hello"`
	RecaptchaToken string `json:"recaptchaToken,omitempty" validate:"max=4096"`
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.ProjectType = strings.TrimSpace(r.ProjectType)
	r.Message = strings.TrimSpace(r.Message)
}

func (r ContactRequest) Validate() error {
	return validateStruct(r)
}

// ToModel builds the stored record. Callers assign the id.
func (r ContactRequest) ToModel(now time.Time) model.ContactMessage {
	projectType := r.ProjectType
	if projectType == "" {
		projectType = shared.DefaultProjectType
	}
	return model.ContactMessage{
		Name:        SanitizeIntake(r.Name, MaxNameLength),
		Email:       SanitizeIntake(r.Email, MaxEmailLength),
		ProjectType: SanitizeIntake(projectType, MaxProjectTypeLength),
		Message:     SanitizeIntake(r.Message, MaxContactMessage),
		Timestamp:   now.UTC(),
	}
}

// ParseContact decodes and validates a contact form body.
func ParseContact(raw []byte) (*ContactRequest, error) {
	var req ContactRequest
	if err := decodeStrict(raw, &req); err != nil {
		return nil, err
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

type ConsultationRequest struct {
	Name           string `json:"name" validate:"required,max=100" example:"Ana"`
	Email          string `json:"email" validate:"required,max=254,simple_email" example:"ana@example.com"`
	Role           string `json:"role" validate:"required,max=2000" example:"cto"`
	ProjectStage   string `json:"projectStage" validate:"required,max=2000" example:"mvp"`
	MainChallenge  string `json:"mainChallenge" validate:"required,max=2000" example:"scaling"`
	TeamSize       string `json:"teamSize" validate:"required,max=2000" example:"2-5"`
	Urgency        string `json:"urgency" validate:"required,max=2000" example:"this-month"`
	RecaptchaToken string `json:"recaptchaToken,omitempty" validate:"max=4096"`
}

func (r *ConsultationRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = strings.TrimSpace(r.Role)
	r.ProjectStage = strings.TrimSpace(r.ProjectStage)
	r.MainChallenge = strings.TrimSpace(r.MainChallenge)
	r.TeamSize = strings.TrimSpace(r.TeamSize)
	r.Urgency = strings.TrimSpace(r.Urgency)
}

func (r ConsultationRequest) Validate() error {
	return validateStruct(r)
}

func (r ConsultationRequest) ToModel(now time.Time) model.ConsultationRequest {
	return model.ConsultationRequest{
		Name:          SanitizeIntake(r.Name, MaxNameLength),
		Email:         SanitizeIntake(r.Email, MaxEmailLength),
		Role:          SanitizeIntake(r.Role, MaxConsultationField),
		ProjectStage:  SanitizeIntake(r.ProjectStage, MaxConsultationField),
		MainChallenge: SanitizeIntake(r.MainChallenge, MaxConsultationField),
		TeamSize:      SanitizeIntake(r.TeamSize, MaxConsultationField),
		Urgency:       SanitizeIntake(r.Urgency, MaxConsultationField),
		Timestamp:     now.UTC(),
		Source:        shared.ConsultationSource,
	}
}

// ParseConsultation decodes and validates a consultation form body.
func ParseConsultation(raw []byte) (*ConsultationRequest, error) {
	var req ConsultationRequest
	if err := decodeStrict(raw, &req); err != nil {
		return nil, err
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

type MessagesResponse struct {
	Messages []model.ContactMessage `json:"messages"`
}

type ConsultationsResponse struct {
	Consultations []model.ConsultationRequest `json:"consultations"`
}
