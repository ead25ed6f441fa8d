package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
)

type Handler struct {
	feedService *usecase.FeedService
	seoService  *usecase.SEOService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(feedService *usecase.FeedService, seoService *usecase.SEOService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		feedService: feedService,
		seoService:  seoService,
		logger:      logger.Named("httpapi"),
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
