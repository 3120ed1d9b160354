package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sidehustle-starter/coach-api/config"
	"github.com/sidehustle-starter/coach-api/internal/server"
	key_value "github.com/sidehustle-starter/coach-api/internal/storage/key-value"
	"github.com/sidehustle-starter/coach-api/internal/storage/postgres"
	"github.com/sidehustle-starter/coach-api/internal/usecase"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg *config.Config, logger *zap.Logger) error {
	profileStorage, memoryStorage, storeKind, err := buildStorages(cfg.Store)
	if err != nil {
		return err
	}
	logger.Info("memory store selected", zap.String("store", storeKind))

	openAIUsecase := usecase.NewOpenAIUsecase(cfg.OpenAI, logger)
	identityUsecase := usecase.NewIdentityUsecase(cfg.Auth, logger)

	memoryUsecase := usecase.NewMemoryUsecase(
		usecase.MemoryUsecaseDeps{
			Completer:     openAIUsecase,
			MemoryStorage: memoryStorage,
			Logger:        logger,
		},
	)

	coachUsecase := usecase.NewCoachUsecase(
		usecase.CoachUsecaseDeps{
			Completer:      openAIUsecase,
			Identity:       identityUsecase,
			ProfileStorage: profileStorage,
			Memory:         memoryUsecase,
			Logger:         logger,
		},
	)

	coachHandler := server.NewCoachHandler(coachUsecase, cfg.OpenAI, logger)
	router := server.NewRouter(coachHandler, storeKind)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err = <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	stop()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	// Let in-flight memory updates land before the process exits.
	coachUsecase.Wait()
	logger.Info("server stopped")
	return nil
}

// buildStorages picks the profile/memory backend: postgres when a
// database URL is configured, redis as the lightweight alternative,
// otherwise nil stores, which turn the memory features into no-ops.
func buildStorages(cfg config.Store) (usecase.ProfileStorage, usecase.MemoryStorage, string, error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.NewProfileStorage(db), postgres.NewMemoryStorage(db), "postgres", nil
	case cfg.RedisEndpoint != "":
		rdb := redis.NewClient(
			&redis.Options{
				Addr: cfg.RedisEndpoint,
			},
		)
		return key_value.NewProfileStorage(rdb), key_value.NewMemoryStorage(rdb), "redis", nil
	default:
		return nil, nil, "none", nil
	}
}
