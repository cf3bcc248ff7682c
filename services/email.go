package services

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/reinaldotineo/portfolio_api/model"
	log "github.com/sirupsen/logrus"
)

// LeadNotifier is told about every stored submission. Implementations must
// not block the request.
type LeadNotifier interface {
	NotifyContact(m model.ContactMessage)
	NotifyConsultation(r model.ConsultationRequest)
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService mails the operator a copy of each new lead. It is a no-op
// unless SMTP_HOST and NOTIFY_EMAIL are both set.
type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	notifyEmail  string

	templates map[string]*template.Template
	sendMail  sendMailFunc
	wg        sync.WaitGroup
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.smtpHost = settings.SMTPHost
	svc.smtpPort = settings.SMTPPort
	svc.smtpUsername = settings.SMTPUsername
	svc.smtpPassword = settings.SMTPPassword
	svc.fromEmail = settings.FromEmail
	svc.fromName = settings.FromName
	svc.notifyEmail = settings.NotifyEmail
	svc.sendMail = smtp.SendMail

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	if err := svc.loadTemplates(); err != nil {
		return err
	}
	if !svc.Enabled() {
		log.Info("SMTP_HOST or NOTIFY_EMAIL not set, lead notifications disabled")
	}
	return nil
}

// Shutdown waits for notifications already in flight.
func (svc *EmailService) Shutdown() {
	svc.wg.Wait()
}

func (svc *EmailService) Enabled() bool {
	return svc.smtpHost != "" && svc.notifyEmail != ""
}

const contactNotificationText = `New contact message

Name:         {{.Name}}
Email:        {{.Email}}
Project type: {{.ProjectType}}
Received:     {{.Received}}

{{.Message}}
`

const consultationNotificationText = `New technical consultation request

Name:           {{.Name}}
Email:          {{.Email}}
Role:           {{.Role}}
Project stage:  {{.ProjectStage}}
Team size:      {{.TeamSize}}
Urgency:        {{.Urgency}}
Received:       {{.Received}}

Main challenge:
{{.MainChallenge}}
`

type contactNotificationData struct {
	model.ContactMessage
	Received string
}

type consultationNotificationData struct {
	model.ConsultationRequest
	Received string
}

func (svc *EmailService) loadTemplates() error {
	svc.templates = make(map[string]*template.Template)

	var err error
	svc.templates["contact"], err = template.New("contact").Parse(contactNotificationText)
	if err != nil {
		return fmt.Errorf("failed to parse contact notification template: %w", err)
	}

	svc.templates["consultation"], err = template.New("consultation").Parse(consultationNotificationText)
	if err != nil {
		return fmt.Errorf("failed to parse consultation notification template: %w", err)
	}

	return nil
}

func (svc *EmailService) NotifyContact(m model.ContactMessage) {
	if !svc.Enabled() {
		return
	}
	data := contactNotificationData{ContactMessage: m, Received: m.Timestamp.Format(time.RFC1123)}
	svc.dispatch(fmt.Sprintf("New contact from %s", m.Name), "contact", data)
}

func (svc *EmailService) NotifyConsultation(r model.ConsultationRequest) {
	if !svc.Enabled() {
		return
	}
	data := consultationNotificationData{ConsultationRequest: r, Received: r.Timestamp.Format(time.RFC1123)}
	svc.dispatch(fmt.Sprintf("New consultation request from %s", r.Name), "consultation", data)
}

func (svc *EmailService) dispatch(subject, templateName string, data interface{}) {
	svc.wg.Add(1)
	go func() {
		defer svc.wg.Done()
		if err := svc.sendTemplateEmail(svc.notifyEmail, subject, templateName, data); err != nil {
			log.WithError(err).WithField("template", templateName).Error("Lead notification failed")
		}
	}()
}

func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return svc.sendEmail(to, subject, body.String())
}

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

func (svc *EmailService) sendEmail(to, subject, body string) error {
	subject = headerSanitizer.Replace(subject)

	var auth smtp.Auth
	if svc.smtpUsername != "" {
		auth = smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := svc.sendMail(svc.smtpHost+":"+svc.smtpPort, auth, svc.fromEmail, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Lead notification sent")
	return nil
}
