package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sidehustle-starter/coach-api/config"
	"github.com/sidehustle-starter/coach-api/internal/model"
	"github.com/sidehustle-starter/coach-api/internal/usecase"
	"go.uber.org/zap"
)

const (
	msgMethodNotAllowed  = "Method not allowed"
	msgMisconfigured     = "Server misconfigured: missing OPENAI_API_KEY"
	msgInvalidJSON       = "Invalid JSON body"
	msgMissingMessage    = "Missing 'message' field"
	msgUpstreamAPIError  = "OpenAI API error"
	msgUnexpectedFailure = "Unexpected server error"
)

// CoachHandler serves the chat endpoint.
type CoachHandler struct {
	coach  *usecase.CoachUsecase
	cfg    config.OpenAI
	logger *zap.Logger
}

func NewCoachHandler(coach *usecase.CoachUsecase, cfg config.OpenAI, logger *zap.Logger) *CoachHandler {
	return &CoachHandler{
		coach:  coach,
		cfg:    cfg,
		logger: logger,
	}
}

// HandleAsk validates the request, runs the exchange, and writes the
// reply. Validation order is fixed: method, credential, JSON shape,
// message presence — nothing leaves the process before all four pass.
func (h *CoachHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		Error(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	if h.cfg.APIKey == "" {
		h.logger.Error("missing OPENAI_API_KEY, refusing request")
		Error(w, http.StatusInternalServerError, msgMisconfigured)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	var req model.ChatRequest
	if err = json.Unmarshal(body, &req); err != nil {
		h.logger.Info("invalid JSON body", zap.Error(err))
		Error(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		Error(w, http.StatusBadRequest, msgMissingMessage)
		return
	}

	reply, err := h.coach.Ask(r.Context(), req, bearerToken(r))
	if err != nil {
		var upstreamErr *usecase.UpstreamAPIError
		if errors.As(err, &upstreamErr) {
			h.logger.Error(
				"completion API error",
				zap.Int("status", upstreamErr.StatusCode),
				zap.String("detail", upstreamErr.Detail),
			)
			ErrorWithDetail(w, http.StatusInternalServerError, msgUpstreamAPIError, upstreamErr.Detail)
			return
		}
		h.logger.Error("failed to generate reply", zap.Error(err))
		Error(w, http.StatusInternalServerError, msgUnexpectedFailure)
		return
	}

	JSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
