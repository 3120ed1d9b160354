package usecase

import (
	"strings"
	"testing"

	"github.com/sidehustle-starter/coach-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBundleGuest(t *testing.T) {
	req := model.ChatRequest{
		Message: "I want to start a candle business",
	}

	messages := BuildPromptBundle(req, "", "").Messages()

	require.Len(t, messages, 2)
	assert.Equal(t, model.MessageRoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Body, "Side Hustle Starter Coach")
	assert.Contains(t, messages[0].Body, "/resources/choose-your-side-hustle")
	assert.Equal(t, model.MessageRoleUser, messages[1].Role)
	assert.Equal(t, "I want to start a candle business", messages[1].Body)
}

func TestPromptBundleUserMessageIsAlwaysLast(t *testing.T) {
	req := model.ChatRequest{
		Message:     "what next?",
		PageContext: "/start",
		StarterProgress: &model.StarterProgress{
			Percent:   40,
			DoneSlugs: []string{"choose-your-side-hustle", "first-action-plan"},
			NextSlug:  "budgeting-setup",
		},
	}

	messages := BuildPromptBundle(req, "Name: Sam", "I sell candles.").Messages()

	last := messages[len(messages)-1]
	assert.Equal(t, model.MessageRoleUser, last.Role)
	assert.Equal(t, "what next?", last.Body)
	for _, message := range messages[:len(messages)-1] {
		assert.Equal(t, model.MessageRoleSystem, message.Role)
	}
}

func TestPromptBundleMemorySegment(t *testing.T) {
	req := model.ChatRequest{Message: "hi"}

	messages := BuildPromptBundle(req, "Name: Sam\nFocus area: candles", "I prefer evenings.").Messages()

	require.Len(t, messages, 3)
	memorySegment := messages[1].Body
	assert.Contains(t, memorySegment, "do not repeat it verbatim")
	assert.Contains(t, memorySegment, "Name: Sam")
	assert.Contains(t, memorySegment, "I prefer evenings.")
}

func TestPromptBundleProgressSegment(t *testing.T) {
	req := model.ChatRequest{
		Message: "what next?",
		StarterProgress: &model.StarterProgress{
			Percent:   60,
			DoneSlugs: []string{"choose-your-side-hustle", "first-action-plan", "budgeting-setup"},
			NextSlug:  "brand-basics",
		},
	}

	messages := BuildPromptBundle(req, "", "").Messages()

	require.Len(t, messages, 3)
	contextSegment := messages[1].Body
	assert.Contains(t, contextSegment, "Starter Path progress: 60% complete.")
	assert.Contains(t, contextSegment, "Completed steps: choose-your-side-hustle, first-action-plan, budgeting-setup.")
	assert.Contains(t, contextSegment, "Next suggested step: brand-basics.")
	assert.Contains(t, contextSegment, "Use this context only to tailor your answer")
	assert.NotContains(t, contextSegment, "The Starter Path is complete.")
}

func TestPromptBundleProgressCompleteSignal(t *testing.T) {
	tests := []struct {
		name     string
		progress model.StarterProgress
	}{
		{name: "percent 100", progress: model.StarterProgress{Percent: 100}},
		{name: "isComplete set", progress: model.StarterProgress{Percent: 80, IsComplete: true}},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				progress := tt.progress
				req := model.ChatRequest{Message: "done!", StarterProgress: &progress}

				messages := BuildPromptBundle(req, "", "").Messages()

				require.Len(t, messages, 3)
				assert.Contains(t, messages[1].Body, "The Starter Path is complete.")
			},
		)
	}
}

func TestPromptBundleEmptyProgressDefaults(t *testing.T) {
	req := model.ChatRequest{
		Message:         "hello",
		StarterProgress: &model.StarterProgress{},
	}

	messages := BuildPromptBundle(req, "", "").Messages()

	require.Len(t, messages, 3)
	assert.Contains(t, messages[1].Body, "Completed steps: none.")
	assert.Contains(t, messages[1].Body, "Next suggested step: unknown.")
}

func TestPromptBundleGuideAssistantMode(t *testing.T) {
	req := model.ChatRequest{
		Message:    "how do I pick a niche?",
		Mode:       model.ModeGuideAssistant,
		GuideSlug:  "choose-your-side-hustle",
		SystemHint: "The user is in the niche-selection section.",
	}

	messages := BuildPromptBundle(req, "", "").Messages()

	require.Len(t, messages, 3)
	assert.Contains(t, messages[0].Body, `embedded in the "choose-your-side-hustle" guide`)
	assert.Equal(t, "The user is in the niche-selection section.", messages[1].Body)
}

func TestPromptBundlePageContextOnly(t *testing.T) {
	req := model.ChatRequest{
		Message:     "hello",
		PageContext: "/resources/brand-basics",
	}

	messages := BuildPromptBundle(req, "", "").Messages()

	require.Len(t, messages, 3)
	assert.True(t, strings.HasPrefix(messages[1].Body, "User is currently on page: /resources/brand-basics"))
}
