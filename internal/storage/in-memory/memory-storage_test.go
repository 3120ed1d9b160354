package in_memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageReplacesOnUpsert(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	userID := uuid.New()

	_, err := storage.GetMemory(ctx, userID)
	assert.ErrorIs(t, err, model.ErrMemoryDoesNotExist)

	require.NoError(t, storage.UpsertMemory(ctx, userID, "I make candles."))
	require.NoError(t, storage.UpsertMemory(ctx, userID, "I make candles and soap."))

	record, err := storage.GetMemory(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "I make candles and soap.", record.Memory, "upsert replaces, never appends")
	assert.Equal(t, userID, record.UserID)
	assert.False(t, record.UpdatedAt.IsZero())
}

func TestProfileStorageRoundTrip(t *testing.T) {
	storage := NewProfileStorage()
	ctx := context.Background()
	userID := uuid.New()

	_, err := storage.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, model.ErrProfileDoesNotExist)

	profile := model.Profile{
		UserID:          userID,
		DisplayName:     "Sam",
		ExperienceLevel: "total beginner",
		FocusArea:       "candles",
		CurrentGoal:     "first sale",
	}
	require.NoError(t, storage.SetProfile(ctx, profile))

	got, err := storage.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}
