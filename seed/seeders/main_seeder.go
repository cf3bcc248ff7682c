package seeders

import (
	"context"
	"path/filepath"

	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/services"
	"github.com/reinaldotineo/portfolio_api/services/repositories"
	"github.com/reinaldotineo/portfolio_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MainSeeder moves the JSON-file collections under dataDir into SQL.
type MainSeeder struct {
	db      *gorm.DB
	dataDir string
}

func NewMainSeeder(db *gorm.DB, dataDir string) *MainSeeder {
	return &MainSeeder{db: db, dataDir: dataDir}
}

// SeedAll imports messages then consultations.
func (s *MainSeeder) SeedAll(ctx context.Context) error {
	log.Println("Starting lead import...")

	if _, err := s.SeedMessagesOnly(ctx); err != nil {
		log.WithError(err).Error("Message import failed")
		return err
	}

	if _, err := s.SeedConsultationsOnly(ctx); err != nil {
		log.WithError(err).Error("Consultation import failed")
		return err
	}

	log.Println("Lead import completed successfully!")
	return nil
}

func (s *MainSeeder) SeedMessagesOnly(ctx context.Context) (ImportStats, error) {
	src := repositories.NewFileStore[model.ContactMessage](filepath.Join(s.dataDir, services.MessagesFile))
	stats, err := importCollection[model.ContactMessage](ctx, s.db, src, withContactID)
	if err == nil {
		logStats(shared.KindMessages, stats)
	}
	return stats, err
}

func (s *MainSeeder) SeedConsultationsOnly(ctx context.Context) (ImportStats, error) {
	src := repositories.NewFileStore[model.ConsultationRequest](filepath.Join(s.dataDir, services.ConsultationsFile))
	stats, err := importCollection[model.ConsultationRequest](ctx, s.db, src, withConsultationID)
	if err == nil {
		logStats(shared.KindConsultations, stats)
	}
	return stats, err
}
