package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/config"
	"go.uber.org/zap"
)

var (
	ErrIdentityNotConfigured = errors.New("auth endpoint is not configured")
	ErrTokenNotResolved      = errors.New("bearer token could not be resolved")
)

const identityTimeout = 5 * time.Second

// IdentityUsecase exchanges a bearer token for a user id against the
// auth service (Supabase GoTrue wire shape). Failures degrade the
// request to guest handling, they never fail it.
type IdentityUsecase struct {
	cfg        config.Auth
	httpClient *http.Client
	logger     *zap.Logger
}

func NewIdentityUsecase(cfg config.Auth, logger *zap.Logger) *IdentityUsecase {
	return &IdentityUsecase{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: identityTimeout,
		},
		logger: logger,
	}
}

func (i *IdentityUsecase) ResolveBearer(ctx context.Context, token string) (uuid.UUID, error) {
	if i.cfg.AuthURL == "" {
		return uuid.Nil, ErrIdentityNotConfigured
	}
	endpoint, err := url.JoinPath(i.cfg.AuthURL, "/auth/v1/user")
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build auth endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if i.cfg.AnonKey != "" {
		req.Header.Set("apikey", i.cfg.AnonKey)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("%w: auth service returned status %d", ErrTokenNotResolved, resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	userID, err := uuid.Parse(body.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse user id %q: %w", body.ID, err)
	}
	return userID, nil
}
