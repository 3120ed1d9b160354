package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileDoesNotExist = errors.New("profile does not exist")
	ErrMemoryDoesNotExist  = errors.New("memory does not exist")
)

type Profile struct {
	UserID          uuid.UUID
	DisplayName     string
	ExperienceLevel string
	FocusArea       string
	CurrentGoal     string
	Notes           string
}

// Summary flattens the free-text profile fields into a few lines
// suitable for a system prompt. Empty fields are skipped.
func (p Profile) Summary() string {
	var b strings.Builder
	writeLine := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(value))
		b.WriteString("\n")
	}
	writeLine("Name", p.DisplayName)
	writeLine("Experience level", p.ExperienceLevel)
	writeLine("Focus area", p.FocusArea)
	writeLine("Current goal", p.CurrentGoal)
	writeLine("Notes", p.Notes)
	return strings.TrimSpace(b.String())
}

type MemoryRecord struct {
	UserID    uuid.UUID
	Memory    string
	UpdatedAt time.Time
}
