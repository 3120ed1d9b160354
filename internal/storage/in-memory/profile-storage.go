package in_memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
)

type ProfileStorage struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.Profile
}

func NewProfileStorage() *ProfileStorage {
	return &ProfileStorage{
		profiles: make(map[uuid.UUID]model.Profile),
	}
}

func (p *ProfileStorage) GetProfile(_ context.Context, userID uuid.UUID) (model.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	profile, ok := p.profiles[userID]
	if !ok {
		return model.Profile{}, model.ErrProfileDoesNotExist
	}
	return profile, nil
}

func (p *ProfileStorage) SetProfile(_ context.Context, profile model.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[profile.UserID] = profile
	return nil
}
