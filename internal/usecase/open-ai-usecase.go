package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sidehustle-starter/coach-api/config"
	"github.com/sidehustle-starter/coach-api/internal/model"
	openai_tools "github.com/sidehustle-starter/coach-api/pkg/openai-tools"
	"go.uber.org/zap"
)

const (
	OpenAIRoleSystem  = "system"
	OpenAIRoleUser    = "user"
	OpenAIRoleUnknown = "unknown"

	completionTimeout = 60 * time.Second
)

// UpstreamAPIError is a non-2xx answer from the completion API. The
// handler surfaces its detail to the caller; any other completion
// failure stays generic.
type UpstreamAPIError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamAPIError) Error() string {
	return fmt.Sprintf("completion API returned status %d: %s", e.StatusCode, e.Detail)
}

type OpenAIUsecase struct {
	client      *openai.Client
	cfg         config.OpenAI
	logger      *zap.Logger
	countTokens func(messages []openai.ChatCompletionMessage, model string) (int, error)
}

func NewOpenAIUsecase(cfg config.OpenAI, logger *zap.Logger) *OpenAIUsecase {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIUsecase{
		client:      openai.NewClientWithConfig(clientConfig),
		cfg:         cfg,
		logger:      logger,
		countTokens: openai_tools.CountToken,
	}
}

// Complete sends the prompt and returns the single best reply text.
// No retries: an upstream failure is surfaced once.
func (o *OpenAIUsecase) Complete(ctx context.Context, messages []model.PromptMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		TopP:        1,
		N:           1,
		Messages:    toOpenAIMessages(messages),
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &UpstreamAPIError{
				StatusCode: apiErr.HTTPStatusCode,
				Detail:     apiErr.Message,
			}
		}
		// Non-2xx answers whose body is not the JSON error shape
		// (e.g. a proxy's HTML 503) come back as RequestError.
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			detail := ""
			if reqErr.Err != nil {
				detail = reqErr.Err.Error()
			}
			return "", &UpstreamAPIError{
				StatusCode: reqErr.HTTPStatusCode,
				Detail:     detail,
			}
		}
		return "", fmt.Errorf("failed to call completion API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// TrimToBudget drops optional context segments until the bundle fits
// the token budget: page/progress context first, then the guide hint,
// then memory. The persona prompt and user message are never dropped.
func (o *OpenAIUsecase) TrimToBudget(bundle PromptBundle) []model.PromptMessage {
	if o.cfg.TokenBudget <= 0 {
		return bundle.Messages()
	}
	droppable := []*string{&bundle.Context, &bundle.Hint, &bundle.Memory}
	for {
		messages := bundle.Messages()
		tokenCount, err := o.countTokens(toOpenAIMessages(messages), o.cfg.Model)
		if err != nil {
			o.logger.Warn("failed to count prompt tokens", zap.Error(err))
			return messages
		}
		if tokenCount < o.cfg.TokenBudget || len(droppable) == 0 {
			return messages
		}
		*droppable[0] = ""
		droppable = droppable[1:]
		o.logger.Info("prompt context trimmed due to token limit", zap.Int("token_count", tokenCount))
	}
}

func toOpenAIMessages(messages []model.PromptMessage) []openai.ChatCompletionMessage {
	openAIMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		openAIMessages = append(
			openAIMessages, openai.ChatCompletionMessage{
				Role:    parseMessageRole(message.Role),
				Content: message.Body,
			},
		)
	}
	return openAIMessages
}

func parseMessageRole(role model.MessageRole) string {
	switch role {
	case model.MessageRoleSystem:
		return OpenAIRoleSystem
	case model.MessageRoleUser:
		return OpenAIRoleUser
	default:
		return OpenAIRoleUnknown
	}
}
