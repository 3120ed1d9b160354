package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// FallbackReply is returned when the completion API answers with no
// usable text.
const FallbackReply = "Sorry, I couldn't generate a response right now."

type Completer interface {
	Complete(ctx context.Context, messages []model.PromptMessage) (string, error)
	TrimToBudget(bundle PromptBundle) []model.PromptMessage
}

type IdentityResolver interface {
	ResolveBearer(ctx context.Context, token string) (uuid.UUID, error)
}

type ProfileStorage interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
}

type CoachUsecaseDeps struct {
	Completer      Completer
	Identity       IdentityResolver
	ProfileStorage ProfileStorage
	Memory         *MemoryUsecase
	Logger         *zap.Logger
}

type CoachUsecase struct {
	CoachUsecaseDeps
	wg conc.WaitGroup
}

func NewCoachUsecase(deps CoachUsecaseDeps) *CoachUsecase {
	return &CoachUsecase{
		CoachUsecaseDeps: deps,
	}
}

// Ask runs one chat exchange: resolve identity, enrich the prompt with
// stored context, call the completion API, and kick off the detached
// memory update for verified users. Only the completion call can fail
// the request; every enrichment step degrades to a plainer prompt.
func (c *CoachUsecase) Ask(ctx context.Context, req model.ChatRequest, bearerToken string) (string, error) {
	userID, verified := c.resolveIdentity(ctx, req, bearerToken)

	profileSummary, memory := c.loadUserContext(ctx, userID)

	bundle := BuildPromptBundle(req, profileSummary, memory)
	messages := c.Completer.TrimToBudget(bundle)

	reply, err := c.Completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = FallbackReply
	}

	// Memory writes require a verified identity; a bare userId from
	// the body is only trusted for reads.
	if verified && c.Memory != nil {
		userMessage := req.Message
		answer := reply
		c.wg.Go(
			func() {
				c.Memory.Refresh(userID, userMessage, answer)
			},
		)
	}
	return reply, nil
}

// Wait blocks until all detached memory updates have finished.
func (c *CoachUsecase) Wait() {
	c.wg.Wait()
}

func (c *CoachUsecase) resolveIdentity(
	ctx context.Context, req model.ChatRequest, bearerToken string,
) (uuid.UUID, bool) {
	if bearerToken != "" && c.Identity != nil {
		userID, err := c.Identity.ResolveBearer(ctx, bearerToken)
		if err == nil {
			return userID, true
		}
		if !errors.Is(err, ErrIdentityNotConfigured) {
			c.Logger.Info("bearer token not resolved, continuing as guest", zap.Error(err))
		}
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err == nil {
			return userID, false
		}
		c.Logger.Info("ignoring malformed userId", zap.String("user_id", req.UserID))
	}
	return uuid.Nil, false
}

func (c *CoachUsecase) loadUserContext(ctx context.Context, userID uuid.UUID) (string, string) {
	if userID == uuid.Nil {
		return "", ""
	}

	profileSummary := ""
	if c.ProfileStorage != nil {
		profile, err := c.ProfileStorage.GetProfile(ctx, userID)
		switch {
		case err == nil:
			profileSummary = profile.Summary()
		case !errors.Is(err, model.ErrProfileDoesNotExist):
			c.Logger.Warn("failed to load profile", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	memory := ""
	if c.Memory != nil && c.Memory.MemoryStorage != nil {
		record, err := c.Memory.MemoryStorage.GetMemory(ctx, userID)
		switch {
		case err == nil:
			memory = record.Memory
		case !errors.Is(err, model.ErrMemoryDoesNotExist):
			c.Logger.Warn("failed to load memory", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return profileSummary, memory
}
