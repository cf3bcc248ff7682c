package model

import "time"

// ContactMessage is a lead left through the contact form. Rows are never updated.
type ContactMessage struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:254;not null;index"`
	ProjectType string    `json:"projectType" gorm:"size:100;not null"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;index"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m ContactMessage) SubmissionID() string {
	return m.ID
}

// ConsultationRequest is a lead left through the technical consultation form.
type ConsultationRequest struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	Email         string    `json:"email" gorm:"size:254;not null;index"`
	Role          string    `json:"role" gorm:"type:text;not null"`
	ProjectStage  string    `json:"projectStage" gorm:"type:text;not null"`
	MainChallenge string    `json:"mainChallenge" gorm:"type:text;not null"`
	TeamSize      string    `json:"teamSize" gorm:"type:text;not null"`
	Urgency       string    `json:"urgency" gorm:"type:text;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"not null;index"`
	Source        string    `json:"source" gorm:"size:50;not null"`
}

func (ConsultationRequest) TableName() string {
	return "consultation_requests"
}

func (r ConsultationRequest) SubmissionID() string {
	return r.ID
}

// Submission is implemented by every stored lead type.
type Submission interface {
	ContactMessage | ConsultationRequest
	SubmissionID() string
}
