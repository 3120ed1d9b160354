package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sidehustle-starter/coach-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveBearer(t *testing.T) {
	userID := uuid.New()
	authServer := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/auth/v1/user", r.URL.Path)
				if r.Header.Get("Authorization") != "Bearer good-token" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				assert.Equal(t, "anon-key", r.Header.Get("apikey"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"` + userID.String() + `"}`))
			},
		),
	)
	defer authServer.Close()

	identity := NewIdentityUsecase(
		config.Auth{AuthURL: authServer.URL, AnonKey: "anon-key"}, zap.NewNop(),
	)

	resolved, err := identity.ResolveBearer(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	_, err = identity.ResolveBearer(context.Background(), "expired-token")
	assert.ErrorIs(t, err, ErrTokenNotResolved)
}

func TestResolveBearerNotConfigured(t *testing.T) {
	identity := NewIdentityUsecase(config.Auth{}, zap.NewNop())

	_, err := identity.ResolveBearer(context.Background(), "token")
	assert.ErrorIs(t, err, ErrIdentityNotConfigured)
}

func TestResolveBearerBadBody(t *testing.T) {
	authServer := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"not-a-uuid"}`))
			},
		),
	)
	defer authServer.Close()

	identity := NewIdentityUsecase(config.Auth{AuthURL: authServer.URL}, zap.NewNop())

	_, err := identity.ResolveBearer(context.Background(), "token")
	assert.Error(t, err)
}
