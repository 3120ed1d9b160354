package key_value

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sidehustle-starter/coach-api/internal/model"
)

type profileInternal struct {
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	ExperienceLevel string `json:"experience_level"`
	FocusArea       string `json:"focus_area"`
	CurrentGoal     string `json:"current_goal"`
	Notes           string `json:"notes"`
}

type ProfileStorage struct {
	rdb *redis.Client
}

func NewProfileStorage(rdb *redis.Client) *ProfileStorage {
	return &ProfileStorage{
		rdb: rdb,
	}
}

func (p *ProfileStorage) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profileKey := getProfileKey(userID)
	profileRaw, err := p.rdb.Get(ctx, profileKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Profile{}, model.ErrProfileDoesNotExist
		}
		return model.Profile{}, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	var profileInt profileInternal
	if err = json.Unmarshal([]byte(profileRaw), &profileInt); err != nil {
		return model.Profile{}, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	profile := model.Profile{
		UserID:          userID,
		DisplayName:     profileInt.DisplayName,
		ExperienceLevel: profileInt.ExperienceLevel,
		FocusArea:       profileInt.FocusArea,
		CurrentGoal:     profileInt.CurrentGoal,
		Notes:           profileInt.Notes,
	}
	return profile, nil
}

func (p *ProfileStorage) SetProfile(ctx context.Context, profile model.Profile) error {
	profileInt := profileInternal{
		UserID:          profile.UserID.String(),
		DisplayName:     profile.DisplayName,
		ExperienceLevel: profile.ExperienceLevel,
		FocusArea:       profile.FocusArea,
		CurrentGoal:     profile.CurrentGoal,
		Notes:           profile.Notes,
	}
	profileJSON, err := json.Marshal(profileInt)
	if err != nil {
		return fmt.Errorf("failed to marshal internal profile: %w", err)
	}
	profileKey := getProfileKey(profile.UserID)
	if err = p.rdb.Set(ctx, profileKey, profileJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profileKey, err)
	}
	return nil
}

func getProfileKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_profile_%v", userID.String())
}
