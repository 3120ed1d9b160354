package model

type MessageRole string

const (
	MessageRoleSystem = MessageRole("system")
	MessageRoleUser   = MessageRole("user")
)

type PromptMessage struct {
	Role MessageRole
	Body string
}

// ModeGuideAssistant narrows the persona prompt to a single embedded
// guide. Other mode values are accepted and ignored.
const ModeGuideAssistant = "guide-assistant"

type StarterProgress struct {
	Percent    int      `json:"percent"`
	TotalSteps int      `json:"totalSteps,omitempty"`
	DoneSlugs  []string `json:"doneSlugs,omitempty"`
	NextSlug   string   `json:"nextSlug,omitempty"`
	IsComplete bool     `json:"isComplete,omitempty"`
}

func (p StarterProgress) Complete() bool {
	return p.IsComplete || p.Percent >= 100
}

type ChatRequest struct {
	Message         string           `json:"message"`
	PageContext     string           `json:"pageContext,omitempty"`
	StarterProgress *StarterProgress `json:"starterProgress,omitempty"`
	UserID          string           `json:"userId,omitempty"`
	Mode            string           `json:"mode,omitempty"`
	GuideSlug       string           `json:"guideSlug,omitempty"`
	SystemHint      string           `json:"systemHint,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
