package repository

import (
	"ai_course_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// ContentArchiveRepository records every generated lesson so the
// regeneration history survives restarts.
type ContentArchiveRepository struct {
	DB *gorm.DB
}

func NewContentArchiveRepository(db *gorm.DB) *ContentArchiveRepository {
	return &ContentArchiveRepository{DB: db}
}

func (r *ContentArchiveRepository) Record(ctx context.Context, entry *model.ContentArchive) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *ContentArchiveRepository) History(ctx context.Context, learnerID, subject string) ([]model.ContentArchive, error) {
	var entries []model.ContentArchive
	err := r.DB.WithContext(ctx).
		Where("learner_id = ? AND subject = ?", learnerID, subject).
		Order("topic_order ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}
