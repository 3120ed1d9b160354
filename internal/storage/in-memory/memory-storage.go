package in_memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
)

type MemoryStorage struct {
	mu       sync.Mutex
	memories map[uuid.UUID]model.MemoryRecord
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		memories: make(map[uuid.UUID]model.MemoryRecord),
	}
}

func (m *MemoryStorage) GetMemory(_ context.Context, userID uuid.UUID) (model.MemoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.memories[userID]
	if !ok {
		return model.MemoryRecord{}, model.ErrMemoryDoesNotExist
	}
	return record, nil
}

func (m *MemoryStorage) UpsertMemory(_ context.Context, userID uuid.UUID, memory string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memories[userID] = model.MemoryRecord{
		UserID:    userID,
		Memory:    memory,
		UpdatedAt: time.Now(),
	}
	return nil
}
