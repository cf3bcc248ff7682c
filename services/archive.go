package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
)

const archiveURLExpiry = time.Hour

// ObjectStore is the part of MinIOService the archive needs.
type ObjectStore interface {
	Enabled() bool
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type submissionLister interface {
	ListMessages(ctx context.Context) []model.ContactMessage
	ListConsultations(ctx context.Context) []model.ConsultationRequest
}

// ArchiveService copies both lead collections into object storage.
type ArchiveService struct {
	appContext.DefaultService

	objects     ObjectStore
	submissions submissionLister
	now         func() time.Time
}

const ARCHIVE_SVC = "archive_svc"

func (svc ArchiveService) Id() string {
	return ARCHIVE_SVC
}

func NewArchiveService(objects ObjectStore, submissions submissionLister) *ArchiveService {
	return &ArchiveService{objects: objects, submissions: submissions, now: time.Now}
}

func (svc *ArchiveService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *ArchiveService) Start() error {
	svc.objects = svc.Service(MINIO_SVC).(*MinIOService)
	svc.submissions = svc.Service(SUBMISSION_SVC).(*SubmissionService)
	return nil
}

// Snapshot uploads leads/<kind>/<unix>.json for each collection.
func (svc *ArchiveService) Snapshot(ctx context.Context) (*dto.ArchiveResponse, error) {
	if svc.objects == nil || !svc.objects.Enabled() {
		return nil, shared.NewServiceUnavailableError("Object storage is not configured")
	}

	stamp := svc.now().UTC().Unix()
	messages := svc.submissions.ListMessages(ctx)
	consultations := svc.submissions.ListConsultations(ctx)

	resp := &dto.ArchiveResponse{Objects: make([]dto.ArchivedObject, 0, 2)}
	for _, item := range []struct {
		kind    string
		records interface{}
		count   int
	}{
		{shared.KindMessages, messages, len(messages)},
		{shared.KindConsultations, consultations, len(consultations)},
	} {
		obj, err := svc.upload(ctx, item.kind, stamp, item.records, item.count)
		if err != nil {
			log.WithError(err).WithField("kind", item.kind).Error("Archive upload failed")
			return nil, shared.NewInternalError(err)
		}
		resp.Objects = append(resp.Objects, *obj)
	}

	log.WithField("objects", len(resp.Objects)).Info("Lead archive written")
	return resp, nil
}

func (svc *ArchiveService) upload(ctx context.Context, kind string, stamp int64, records interface{}, count int) (*dto.ArchivedObject, error) {
	data, err := sonic.ConfigDefault.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}

	objectName := fmt.Sprintf("leads/%s/%d.json", kind, stamp)
	if err := svc.objects.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return nil, err
	}

	url, err := svc.objects.GetFileURL(ctx, objectName, archiveURLExpiry)
	if err != nil {
		return nil, err
	}

	return &dto.ArchivedObject{
		Kind:       kind,
		ObjectName: objectName,
		Records:    count,
		URL:        url,
	}, nil
}
