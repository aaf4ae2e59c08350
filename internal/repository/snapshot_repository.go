package repository

import (
	"ai_course_backend/internal/model"
	"ai_course_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const snapshotKeyPrefix = "learning-platform-storage"

const snapshotCacheTTL = 24 * time.Hour

// SnapshotRepository persists learner snapshots write-through: MySQL is
// the durable copy, redis the fast path.
type SnapshotRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewSnapshotRepository(db *gorm.DB, rdb *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{DB: db, Redis: rdb}
}

func snapshotKey(learnerID string) string {
	return fmt.Sprintf("%s:%s", snapshotKeyPrefix, learnerID)
}

func (r *SnapshotRepository) Save(ctx context.Context, learnerID string, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	row := model.ProgressSnapshot{
		LearnerID: learnerID,
		Payload:   string(payload),
	}
	err = r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "learner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	if r.Redis != nil {
		if err := r.Redis.Set(ctx, snapshotKey(learnerID), payload, snapshotCacheTTL).Err(); err != nil {
			logger.Log.Warn("snapshot cache write failed",
				zap.String("learner_id", learnerID),
				zap.Error(err))
		}
	}
	return nil
}

// Load tries the cache first, falling back to MySQL and backfilling the
// cache on a hit. A learner with no snapshot loads as nil, not an error.
func (r *SnapshotRepository) Load(ctx context.Context, learnerID string) (*model.Snapshot, error) {
	if r.Redis != nil {
		cached, err := r.Redis.Get(ctx, snapshotKey(learnerID)).Result()
		if err == nil {
			var snap model.Snapshot
			if json.Unmarshal([]byte(cached), &snap) == nil {
				return &snap, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("snapshot cache read failed",
				zap.String("learner_id", learnerID),
				zap.Error(err))
		}
	}

	var row model.ProgressSnapshot
	err := r.DB.WithContext(ctx).Where("learner_id = ?", learnerID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if err := r.Redis.Set(ctx, snapshotKey(learnerID), row.Payload, snapshotCacheTTL).Err(); err != nil {
			logger.Log.Warn("snapshot cache backfill failed",
				zap.String("learner_id", learnerID),
				zap.Error(err))
		}
	}
	return &snap, nil
}
