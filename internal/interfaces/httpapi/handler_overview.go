package httpapi

import (
	"net/http"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
	"github.com/sourcegraph/conc"
)

// GetOverview loads the live, schedule and news feeds concurrently for the landing page.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	var (
		live     usecase.FeedResult[match.Match]
		schedule usecase.FeedResult[match.Match]
		articles usecase.FeedResult[news.Article]
		wg       conc.WaitGroup
	)
	wg.Go(func() { live = h.feedService.Live(ctx, match.Criteria{}) })
	wg.Go(func() { schedule = h.feedService.Schedule(ctx, match.Criteria{}) })
	wg.Go(func() { articles = h.feedService.News(ctx, "") })
	wg.Wait()

	writeSuccess(ctx, w, http.StatusOK, overviewDTO{
		Live:     matchFeedToDTO(ctx, live),
		Schedule: matchFeedToDTO(ctx, schedule),
		News:     toFeedDTO(articles, articleToDTO),
	})
}
