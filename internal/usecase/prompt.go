package usecase

import (
	"fmt"
	"strings"

	"github.com/sidehustle-starter/coach-api/internal/model"
)

const personaPrompt = `You are the Side Hustle Starter Coach, a calm and practical assistant for new entrepreneurs.

Tone:
- Supportive, clear, and grounded.
- Avoid grind-culture language ("crush it", "10x", "grind", "hustle harder").
- No hypey marketing speak.

Your job:
- Help people clarify or refine their side hustle idea.
- Help them create a small, realistic action plan.
- Suggest what to do next in a way that feels doable.
- When relevant, point them to guides on the site using these URLs:
  - Starter Path overview: /start
  - Resource hub: /resources
  - Example guides (only if relevant):
    - Choose your side hustle: /resources/choose-your-side-hustle
    - First action plan: /resources/first-action-plan
    - Budgeting basics: /resources/budgeting-setup
    - Brand basics: /resources/brand-basics
    - Launch your first page: /resources/launch-your-first-page
- Never invent site URLs outside this list.

Starter Path behavior:
- If the user sounds brand new or unsure where to begin, strongly recommend the Starter Path at /start.
- If the request mentions "what next" or "what step next", try to frame your answer as:
  1) A small next step
  2) A pointer to a relevant guide (URL)
- If Starter Path progress is provided, you may refer to it at a high level (e.g. "you're about X% through") and recommend the next incomplete step's guide when relevant.

Always:
- Give concrete next actions they can do in the next 24-72 hours.
- Keep answers tightly focused on their situation; do not dump long generic lectures.`

const guideFocusFormat = `

Right now you are embedded in the "%s" guide. Keep answers focused on that guide's topic and refer back to it before suggesting other resources.`

const memoryPreamble = "Private context about this user. It may shape your recommendations, but do not repeat it verbatim unless the user explicitly asks what you know about them."

const contextEpilogue = "Use this context only to tailor your answer; do not repeat it verbatim."

// PromptBundle is the ordered set of prompt segments. Persona and
// UserMessage are always present; the rest are optional and may be
// dropped by the token-budget trim.
type PromptBundle struct {
	Persona     string
	Memory      string
	Context     string
	Hint        string
	UserMessage string
}

func BuildPromptBundle(req model.ChatRequest, profileSummary, memory string) PromptBundle {
	persona := personaPrompt
	if req.Mode == model.ModeGuideAssistant && req.GuideSlug != "" {
		persona += fmt.Sprintf(guideFocusFormat, req.GuideSlug)
	}

	return PromptBundle{
		Persona:     persona,
		Memory:      buildMemorySegment(profileSummary, memory),
		Context:     buildContextSegment(req),
		Hint:        strings.TrimSpace(req.SystemHint),
		UserMessage: req.Message,
	}
}

// Messages flattens the bundle into the role-tagged sequence sent to
// the completion API. The user message is always last; later system
// segments refine earlier ones.
func (b PromptBundle) Messages() []model.PromptMessage {
	messages := make([]model.PromptMessage, 0, 5)
	messages = append(
		messages, model.PromptMessage{
			Role: model.MessageRoleSystem,
			Body: b.Persona,
		},
	)
	for _, segment := range []string{b.Memory, b.Context, b.Hint} {
		if segment == "" {
			continue
		}
		messages = append(
			messages, model.PromptMessage{
				Role: model.MessageRoleSystem,
				Body: segment,
			},
		)
	}
	messages = append(
		messages, model.PromptMessage{
			Role: model.MessageRoleUser,
			Body: b.UserMessage,
		},
	)
	return messages
}

func buildMemorySegment(profileSummary, memory string) string {
	if profileSummary == "" && memory == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(memoryPreamble)
	if profileSummary != "" {
		b.WriteString("\n\nProfile:\n")
		b.WriteString(profileSummary)
	}
	if memory != "" {
		b.WriteString("\n\nMemory:\n")
		b.WriteString(memory)
	}
	return b.String()
}

func buildContextSegment(req model.ChatRequest) string {
	progressSnippet := ""
	if req.StarterProgress != nil {
		progressSnippet = buildProgressSnippet(*req.StarterProgress)
	}
	pageInfo := ""
	if req.PageContext != "" {
		pageInfo = fmt.Sprintf("User is currently on page: %s\n", req.PageContext)
	}
	if progressSnippet == "" && pageInfo == "" {
		return ""
	}
	return strings.TrimSpace(pageInfo + progressSnippet + contextEpilogue)
}

func buildProgressSnippet(progress model.StarterProgress) string {
	doneSteps := "none"
	if len(progress.DoneSlugs) > 0 {
		doneSteps = strings.Join(progress.DoneSlugs, ", ")
	}
	nextStep := progress.NextSlug
	if nextStep == "" {
		nextStep = "unknown"
	}
	snippet := fmt.Sprintf(
		"Starter Path progress: %d%% complete.\nCompleted steps: %s.\nNext suggested step: %s.\n",
		progress.Percent, doneSteps, nextStep,
	)
	if progress.Complete() {
		snippet += "The Starter Path is complete. Congratulate briefly and suggest what comes after the Starter Path.\n"
	}
	return snippet
}
