package openai_tools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const (
	tokensPerMessage = 4
	tokensPerReply   = 3
	fallbackEncoding = "cl100k_base"
)

// CountToken approximates the prompt token count the completion API
// will bill for the given messages.
func CountToken(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to get encoding for model %s: %w", model, err)
		}
	}

	tokenCount := 0
	for _, message := range messages {
		tokenCount += tokensPerMessage
		tokenCount += len(tkm.Encode(message.Role, nil, nil))
		tokenCount += len(tkm.Encode(message.Content, nil, nil))
	}
	tokenCount += tokensPerReply
	return tokenCount, nil
}
