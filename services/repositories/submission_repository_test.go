package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ContactMessage{}, &model.ConsultationRequest{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSubmissionRepository_AppendAndReadAll(t *testing.T) {
	repo := NewSubmissionRepository[model.ContactMessage](newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose; reads come back by timestamp.
	later := contact("b")
	later.Timestamp = base.Add(time.Minute)
	earlier := contact("a")
	earlier.Timestamp = base

	require.NoError(t, repo.Append(ctx, later))
	require.NoError(t, repo.Append(ctx, earlier))

	records, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "message b", records[1].Message)
}

func TestSubmissionRepository_EmptyTable(t *testing.T) {
	repo := NewSubmissionRepository[model.ConsultationRequest](newTestDB(t))

	records, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSubmissionRepository_DuplicateIDRejected(t *testing.T) {
	repo := NewSubmissionRepository[model.ContactMessage](newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, contact("dup")))
	assert.Error(t, repo.Append(ctx, contact("dup")))

	exists, err := repo.Exists(ctx, "dup")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubmissionRepository_SatisfiesStore(t *testing.T) {
	var _ SubmissionStore[model.ContactMessage] = NewSubmissionRepository[model.ContactMessage](newTestDB(t))
	var _ SubmissionStore[model.ContactMessage] = NewFileStore[model.ContactMessage](t.TempDir() + "/m.json")
}
