package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"go.uber.org/zap"
)

const memoryRefreshTimeout = 30 * time.Second

const memoryRewritePrompt = `You maintain a short memory about a user of a side-hustle coaching site.
Rewrite the memory from scratch using the previous memory and the latest exchange.

Rules:
- Write in first person from the user's perspective (e.g. "I'm exploring a candle business.").
- Keep only durable facts: preferences, goals, interests, long-term plans.
- Exclude sensitive personal data (health, exact finances, identity details).
- At most 120 words. Return only the memory text, nothing else.`

const memoryExchangeFormat = `Previous memory:
%s

User's latest message:
%s

Coach's reply:
%s`

type MemoryStorage interface {
	GetMemory(ctx context.Context, userID uuid.UUID) (model.MemoryRecord, error)
	UpsertMemory(ctx context.Context, userID uuid.UUID, memory string) error
}

type MemoryUsecaseDeps struct {
	Completer     Completer
	MemoryStorage MemoryStorage
	Logger        *zap.Logger
}

// MemoryUsecase rewrites the per-user memory record after an
// authenticated exchange. Every failure here is logged and swallowed;
// the primary reply must never depend on it.
type MemoryUsecase struct {
	MemoryUsecaseDeps
}

func NewMemoryUsecase(deps MemoryUsecaseDeps) *MemoryUsecase {
	return &MemoryUsecase{
		MemoryUsecaseDeps: deps,
	}
}

// Refresh distills the exchange into an updated memory blob and
// replaces the stored value. Runs detached from the request, with its
// own deadline.
func (m *MemoryUsecase) Refresh(userID uuid.UUID, userMessage, reply string) {
	if m.MemoryStorage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), memoryRefreshTimeout)
	defer cancel()

	if err := m.refresh(ctx, userID, userMessage, reply); err != nil {
		m.Logger.Warn(
			"memory update failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func (m *MemoryUsecase) refresh(ctx context.Context, userID uuid.UUID, userMessage, reply string) error {
	previous := ""
	record, err := m.MemoryStorage.GetMemory(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrMemoryDoesNotExist) {
		return fmt.Errorf("failed to get previous memory: %w", err)
	}
	if err == nil {
		previous = record.Memory
	}
	if previous == "" {
		previous = "(none)"
	}

	messages := []model.PromptMessage{
		{
			Role: model.MessageRoleSystem,
			Body: memoryRewritePrompt,
		},
		{
			Role: model.MessageRoleUser,
			Body: fmt.Sprintf(memoryExchangeFormat, previous, userMessage, reply),
		},
	}
	memory, err := m.Completer.Complete(ctx, messages)
	if err != nil {
		return fmt.Errorf("failed to summarize memory: %w", err)
	}
	memory = strings.TrimSpace(memory)
	if memory == "" {
		return errors.New("summarization returned an empty memory")
	}

	if err = m.MemoryStorage.UpsertMemory(ctx, userID, memory); err != nil {
		return fmt.Errorf("failed to upsert memory: %w", err)
	}
	return nil
}
