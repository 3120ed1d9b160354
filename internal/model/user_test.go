package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileSummarySkipsEmptyFields(t *testing.T) {
	profile := Profile{
		DisplayName: "Sam",
		FocusArea:   "  candles  ",
	}

	summary := profile.Summary()

	assert.Equal(t, "Name: Sam\nFocus area: candles", summary)
	assert.Empty(t, Profile{}.Summary())
}

func TestStarterProgressComplete(t *testing.T) {
	assert.False(t, StarterProgress{Percent: 99}.Complete())
	assert.True(t, StarterProgress{Percent: 100}.Complete())
	assert.True(t, StarterProgress{Percent: 20, IsComplete: true}.Complete())
}
