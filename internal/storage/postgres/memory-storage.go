package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type memoryRow struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	Memory    string    `gorm:"column:memory"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memoryRow) TableName() string {
	return "coach_memory"
}

type MemoryStorage struct {
	db *gorm.DB
}

func NewMemoryStorage(db *gorm.DB) *MemoryStorage {
	return &MemoryStorage{
		db: db,
	}
}

func (m *MemoryStorage) GetMemory(ctx context.Context, userID uuid.UUID) (model.MemoryRecord, error) {
	var row memoryRow
	err := m.db.WithContext(ctx).Where("user_id = ?", userID.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.MemoryRecord{}, model.ErrMemoryDoesNotExist
		}
		return model.MemoryRecord{}, fmt.Errorf("failed to get memory %s: %w", userID, err)
	}
	record := model.MemoryRecord{
		UserID:    userID,
		Memory:    row.Memory,
		UpdatedAt: row.UpdatedAt,
	}
	return record, nil
}

// UpsertMemory fully replaces the stored memory text. Concurrent
// writers for the same user race as last-write-wins.
func (m *MemoryStorage) UpsertMemory(ctx context.Context, userID uuid.UUID, memory string) error {
	row := memoryRow{
		UserID:    userID.String(),
		Memory:    memory,
		UpdatedAt: time.Now(),
	}
	err := m.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"memory", "updated_at"}),
		},
	).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert memory %s: %w", userID, err)
	}
	return nil
}
