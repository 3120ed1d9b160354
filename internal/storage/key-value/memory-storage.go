package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sidehustle-starter/coach-api/internal/model"
)

type memoryInternal struct {
	UserID    string    `json:"user_id"`
	Memory    string    `json:"memory"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MemoryStorage struct {
	rdb *redis.Client
}

func NewMemoryStorage(rdb *redis.Client) *MemoryStorage {
	return &MemoryStorage{
		rdb: rdb,
	}
}

func (m *MemoryStorage) GetMemory(ctx context.Context, userID uuid.UUID) (model.MemoryRecord, error) {
	memoryKey := getMemoryKey(userID)
	memoryRaw, err := m.rdb.Get(ctx, memoryKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.MemoryRecord{}, model.ErrMemoryDoesNotExist
		}
		return model.MemoryRecord{}, fmt.Errorf("failed to get memory %s: %w", userID, err)
	}
	var memoryInt memoryInternal
	if err = json.Unmarshal([]byte(memoryRaw), &memoryInt); err != nil {
		return model.MemoryRecord{}, fmt.Errorf("failed to unmarshal memory %s: %w", userID, err)
	}
	record := model.MemoryRecord{
		UserID:    userID,
		Memory:    memoryInt.Memory,
		UpdatedAt: memoryInt.UpdatedAt,
	}
	return record, nil
}

func (m *MemoryStorage) UpsertMemory(ctx context.Context, userID uuid.UUID, memory string) error {
	memoryInt := memoryInternal{
		UserID:    userID.String(),
		Memory:    memory,
		UpdatedAt: time.Now(),
	}
	memoryJSON, err := json.Marshal(memoryInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal memory: %w", err)
	}
	memoryKey := getMemoryKey(userID)
	if err = m.rdb.Set(ctx, memoryKey, memoryJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save memory %s: %w", memoryKey, err)
	}
	return nil
}

func getMemoryKey(userID uuid.UUID) string {
	return fmt.Sprintf("coach_memory_%v", userID.String())
}
