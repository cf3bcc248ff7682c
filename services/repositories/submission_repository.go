package repositories

import (
	"context"

	"github.com/reinaldotineo/portfolio_api/model"
	"gorm.io/gorm"
)

// SubmissionRepository stores one submission kind in its own table.
type SubmissionRepository[T model.Submission] struct {
	BaseRepository
}

func NewSubmissionRepository[T model.Submission](db *gorm.DB) *SubmissionRepository[T] {
	return &SubmissionRepository[T]{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *SubmissionRepository[T]) Append(ctx context.Context, record T) error {
	return r.withContext(ctx).Create(&record).Error
}

func (r *SubmissionRepository[T]) ReadAll(ctx context.Context) ([]T, error) {
	records := []T{}
	if err := r.withContext(ctx).Order("timestamp ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Exists reports whether a record with id is already stored.
func (r *SubmissionRepository[T]) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.withContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
