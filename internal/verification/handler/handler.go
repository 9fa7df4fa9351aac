// Package handler wires the verification endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskproof/internal/verification"
	dErrors "taskproof/pkg/domain-errors"
	"taskproof/pkg/platform/httputil"
	"taskproof/pkg/requestcontext"
)

// Service defines the verification operations the handler exposes.
type Service interface {
	VerifyTask(ctx context.Context, userID string, sub verification.Submission) (*verification.Result, error)
	VerifyMedia(ctx context.Context, userID string, sub verification.MediaSubmission) (*verification.Result, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/tasks/{taskID}/verify", h.HandleVerifyTask)
	r.Post("/media/verify", h.HandleVerifyMedia)
}

// HandleVerifyTask handles POST /tasks/{taskID}/verify requests.
func (h *Handler) HandleVerifyTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "taskID is required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[VerifyTaskRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyTask(ctx, userID, verification.Submission{
		TaskID:      taskID,
		Photos:      req.Photos,
		Links:       req.Links,
		Description: req.Description,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "task verification failed",
			"request_id", requestID,
			"user_id", userID,
			"task_id", taskID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "task verified",
		"request_id", requestID,
		"user_id", userID,
		"task_id", taskID,
		"score", result.Outcome.OverallScore,
		"passed", result.Outcome.Passed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleVerifyMedia handles POST /media/verify requests.
func (h *Handler) HandleVerifyMedia(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[VerifyMediaRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyMedia(ctx, userID, verification.MediaSubmission{
		FileURI:      req.FileURI,
		FileType:     req.FileType,
		UserText:     req.UserText,
		EnhancedText: req.EnhancedText,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "media verification failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "media verified",
		"request_id", requestID,
		"user_id", userID,
		"score", result.Outcome.OverallScore,
		"passed", result.Outcome.Passed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
