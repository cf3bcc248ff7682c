package seeders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/services"
	"github.com/reinaldotineo/portfolio_api/services/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Files written before records carried ids.
const legacyMessages = `[
  {"name":"Ana","email":"ana@example.com","projectType":"web","message":"first","timestamp":"2024-05-01T10:00:00Z"},
  {"name":"Luis","email":"luis@example.com","projectType":"not specified","message":"second","timestamp":"2024-05-02T10:00:00Z"}
]`

const legacyConsultations = `[
  {"name":"Eva","email":"eva@example.com","role":"CTO","projectStage":"mvp","mainChallenge":"scaling","teamSize":"2-5","urgency":"now","timestamp":"2024-05-03T10:00:00Z","source":"consulta-tecnica"}
]`

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactMessage{}, &model.ConsultationRequest{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func writeLegacyFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, services.MessagesFile), []byte(legacyMessages), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, services.ConsultationsFile), []byte(legacyConsultations), 0o644))
	return dir
}

func TestMainSeeder_ImportIsRepeatable(t *testing.T) {
	db := newSeedDB(t)
	seeder := NewMainSeeder(db, writeLegacyFiles(t))
	ctx := context.Background()

	stats, err := seeder.SeedMessagesOnly(ctx)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Read: 2, Inserted: 2}, stats)

	stats, err = seeder.SeedMessagesOnly(ctx)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Read: 2, Skipped: 2}, stats)

	stats, err = seeder.SeedConsultationsOnly(ctx)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Read: 1, Inserted: 1}, stats)

	messages, err := repositories.NewSubmissionRepository[model.ContactMessage](db).ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Message)
	assert.NotEmpty(t, messages[0].ID)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)
}

func TestMainSeeder_SeedAllWithoutFiles(t *testing.T) {
	db := newSeedDB(t)
	require.NoError(t, NewMainSeeder(db, t.TempDir()).SeedAll(context.Background()))

	var count int64
	require.NoError(t, db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLegacyIDIsStable(t *testing.T) {
	m := model.ContactMessage{Email: "ana@example.com", Message: "first"}
	assert.Equal(t, withContactID(m).ID, withContactID(m).ID)

	m.ID = "keep-me"
	assert.Equal(t, "keep-me", withContactID(m).ID)

	a := withConsultationID(model.ConsultationRequest{Email: "a@b.c", MainChallenge: "x"})
	b := withConsultationID(model.ConsultationRequest{Email: "a@b.c", MainChallenge: "y"})
	assert.NotEqual(t, a.ID, b.ID)
}
