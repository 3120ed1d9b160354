package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"gorm.io/gorm"
)

type profileRow struct {
	UserID          string  `gorm:"column:user_id;primaryKey"`
	DisplayName     *string `gorm:"column:display_name"`
	ExperienceLevel *string `gorm:"column:experience_level"`
	FocusArea       *string `gorm:"column:focus_area"`
	CurrentGoal     *string `gorm:"column:current_goal"`
	Notes           *string `gorm:"column:notes"`
}

func (profileRow) TableName() string {
	return "user_profiles"
}

// ProfileStorage reads user_profiles. The table is owned by the
// account area of the site; the coach never writes it.
type ProfileStorage struct {
	db *gorm.DB
}

func NewProfileStorage(db *gorm.DB) *ProfileStorage {
	return &ProfileStorage{
		db: db,
	}
}

func (p *ProfileStorage) GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var row profileRow
	err := p.db.WithContext(ctx).Where("user_id = ?", userID.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Profile{}, model.ErrProfileDoesNotExist
		}
		return model.Profile{}, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	profile := model.Profile{
		UserID:          userID,
		DisplayName:     deref(row.DisplayName),
		ExperienceLevel: deref(row.ExperienceLevel),
		FocusArea:       deref(row.FocusArea),
		CurrentGoal:     deref(row.CurrentGoal),
		Notes:           deref(row.Notes),
	}
	return profile, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
