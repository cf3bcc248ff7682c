package seeders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/services"
	"github.com/reinaldotineo/portfolio_api/services/repositories"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ImportStats counts what one collection import did.
type ImportStats struct {
	Read     int
	Inserted int
	Skipped  int
}

// legacyNamespace derives stable ids for records written before ids existed,
// so importing the same file twice inserts nothing the second time.
var legacyNamespace = uuid.MustParse("5d0c4a52-8f0e-4c53-9f5e-7c3b1f0e2a61")

func legacyID(kind string, parts ...string) string {
	return uuid.NewSHA1(legacyNamespace, []byte(kind+"|"+strings.Join(parts, "|"))).String()
}

func withContactID(m model.ContactMessage) model.ContactMessage {
	if m.ID == "" {
		m.ID = legacyID("messages", m.Timestamp.UTC().String(), m.Email, m.Message)
	}
	return m
}

func withConsultationID(r model.ConsultationRequest) model.ConsultationRequest {
	if r.ID == "" {
		r.ID = legacyID("consultations", r.Timestamp.UTC().String(), r.Email, r.MainChallenge)
	}
	return r
}

// importCollection copies every record from src into the table behind db,
// skipping ids that are already there.
func importCollection[T model.Submission](
	ctx context.Context,
	db *gorm.DB,
	src repositories.SubmissionStore[T],
	assignID func(T) T,
) (ImportStats, error) {
	var stats ImportStats

	records, err := src.ReadAll(ctx)
	if err != nil {
		return stats, err
	}
	stats.Read = len(records)

	dst := repositories.NewSubmissionRepository[T](db)
	for _, record := range records {
		record = assignID(record)

		exists, err := dst.Exists(ctx, record.SubmissionID())
		if err != nil {
			return stats, fmt.Errorf("check %s: %w", record.SubmissionID(), err)
		}
		if exists {
			stats.Skipped++
			continue
		}

		if err := dst.Append(ctx, record); err != nil {
			return stats, fmt.Errorf("insert %s: %w", record.SubmissionID(), services.HandleDBError(err))
		}
		stats.Inserted++
	}

	return stats, nil
}

func logStats(kind string, stats ImportStats) {
	log.WithFields(log.Fields{
		"kind":     kind,
		"read":     stats.Read,
		"inserted": stats.Inserted,
		"skipped":  stats.Skipped,
	}).Info("Collection imported")
}
