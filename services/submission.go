package services

import (
	"context"
	"path/filepath"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/services/repositories"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	MessagesFile      = "messages.json"
	ConsultationsFile = "consultations.json"
)

// SubmissionService owns both lead collections. Storage failures never reach
// the caller: writes are logged and dropped, reads fall back to empty.
type SubmissionService struct {
	appContext.DefaultService

	messages      repositories.SubmissionStore[model.ContactMessage]
	consultations repositories.SubmissionStore[model.ConsultationRequest]
	notifier      LeadNotifier

	driver  string
	dataDir string
	now     func() time.Time
	newID   func() string
}

const SUBMISSION_SVC = "submission_svc"

func (svc SubmissionService) Id() string {
	return SUBMISSION_SVC
}

// NewSubmissionService is used outside the service container. notifier may be nil.
func NewSubmissionService(
	messages repositories.SubmissionStore[model.ContactMessage],
	consultations repositories.SubmissionStore[model.ConsultationRequest],
	notifier LeadNotifier,
) *SubmissionService {
	return &SubmissionService{
		messages:      messages,
		consultations: consultations,
		notifier:      notifier,
		now:           time.Now,
		newID:         newSubmissionID,
	}
}

func (svc *SubmissionService) Configure(ctx *appContext.Context) error {
	settings := ctx.Service(CONFIG_SVC).(*ConfigService).Settings()
	svc.driver = settings.StoreDriver
	svc.dataDir = settings.DataDir
	svc.now = time.Now
	svc.newID = newSubmissionID
	return svc.DefaultService.Configure(ctx)
}

func (svc *SubmissionService) Start() error {
	if db := svc.Service(DATABASE_SVC).(*DatabaseService).Db(); db != nil {
		svc.messages = repositories.NewSubmissionRepository[model.ContactMessage](db)
		svc.consultations = repositories.NewSubmissionRepository[model.ConsultationRequest](db)
	} else {
		svc.messages = repositories.NewFileStore[model.ContactMessage](filepath.Join(svc.dataDir, MessagesFile))
		svc.consultations = repositories.NewFileStore[model.ConsultationRequest](filepath.Join(svc.dataDir, ConsultationsFile))
	}
	svc.notifier = svc.Service(EMAIL_SVC).(*EmailService)

	log.WithFields(log.Fields{
		"driver":   svc.driver,
		"data_dir": svc.dataDir,
	}).Info("Submission store ready")
	return nil
}

func newSubmissionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (svc *SubmissionService) SubmitContact(ctx context.Context, req dto.ContactRequest) model.ContactMessage {
	record := req.ToModel(svc.now())
	record.ID = svc.newID()

	if err := svc.messages.Append(ctx, record); err != nil {
		RecordStorageError(shared.KindMessages, "append")
		log.WithError(err).WithField("id", record.ID).Error("Failed to store contact message")
	}

	RecordLeadSubmitted(shared.KindMessages)
	if svc.notifier != nil {
		svc.notifier.NotifyContact(record)
	}
	return record
}

func (svc *SubmissionService) SubmitConsultation(ctx context.Context, req dto.ConsultationRequest) model.ConsultationRequest {
	record := req.ToModel(svc.now())
	record.ID = svc.newID()

	if err := svc.consultations.Append(ctx, record); err != nil {
		RecordStorageError(shared.KindConsultations, "append")
		log.WithError(err).WithField("id", record.ID).Error("Failed to store consultation request")
	}

	RecordLeadSubmitted(shared.KindConsultations)
	if svc.notifier != nil {
		svc.notifier.NotifyConsultation(record)
	}
	return record
}

func (svc *SubmissionService) ListMessages(ctx context.Context) []model.ContactMessage {
	records, err := svc.messages.ReadAll(ctx)
	if err != nil {
		RecordStorageError(shared.KindMessages, "read")
		log.WithError(err).Error("Failed to read contact messages")
		return []model.ContactMessage{}
	}
	return records
}

func (svc *SubmissionService) ListConsultations(ctx context.Context) []model.ConsultationRequest {
	records, err := svc.consultations.ReadAll(ctx)
	if err != nil {
		RecordStorageError(shared.KindConsultations, "read")
		log.WithError(err).Error("Failed to read consultation requests")
		return []model.ConsultationRequest{}
	}
	return records
}

// RecordRejection counts a submission refused before it reached the store.
func (svc *SubmissionService) RecordRejection(kind, reason string) {
	RecordLeadRejected(kind, reason)
}
