package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
)

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	query := divisionQuery{Division: strings.TrimSpace(r.URL.Query().Get("division"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	feed := h.feedService.News(ctx, query.Division)
	writeSuccess(ctx, w, http.StatusOK, toFeedDTO(feed, articleToDTO))
}

func (h *Handler) ListNewsDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNewsDivisions")
	defer span.End()

	keys := news.DivisionKeys()
	items := make([]newsDivisionDTO, 0, len(keys))
	for _, key := range keys {
		items = append(items, newsDivisionToDTO(key))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetNewsDivision resolves the label and badge for any key; unknown keys echo back with the default badge.
func (h *Handler) GetNewsDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNewsDivision")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, newsDivisionToDTO(strings.TrimSpace(r.PathValue("division"))))
}
