package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
)

func (h *Handler) ListLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLive")
	defer span.End()

	query := parseMatchQuery(r.URL.Query())
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	feed := h.feedService.Live(ctx, query.criteria())
	if query.Date != "" {
		feed.Items = match.ByDatePrefix(feed.Items, query.Date)
	}
	writeSuccess(ctx, w, http.StatusOK, matchFeedToDTO(ctx, feed))
}

// ListResults reads the results feed of one division. Only the first division value selects the feed;
// conference, team, status and exact date narrow it.
func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	query := parseMatchQuery(r.URL.Query())
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(query.Divisions) > 1 {
		writeError(ctx, w, fmt.Errorf("%w: results accept a single division", usecase.ErrInvalidInput))
		return
	}

	division := ""
	if len(query.Divisions) == 1 {
		division = query.Divisions[0]
	}
	criteria := query.criteria()
	criteria.Divisions = nil

	feed := h.feedService.Results(ctx, division, criteria)
	if query.Date != "" {
		feed.Items = match.ByDate(feed.Items, query.Date)
	}
	writeSuccess(ctx, w, http.StatusOK, matchFeedToDTO(ctx, feed))
}

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSchedule")
	defer span.End()

	query := parseMatchQuery(r.URL.Query())
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	feed := h.feedService.Schedule(ctx, query.criteria())
	if query.Date != "" {
		feed.Items = match.ByDatePrefix(feed.Items, query.Date)
	}
	writeSuccess(ctx, w, http.StatusOK, matchFeedToDTO(ctx, feed))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	query := divisionQuery{Division: strings.TrimSpace(r.URL.Query().Get("division"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	results := h.feedService.ResultsByTeam(ctx, query.Division, teamID)
	schedule := h.feedService.ScheduleByTeam(ctx, teamID)
	writeSuccess(ctx, w, http.StatusOK, map[string]feedDTO[matchDTO]{
		"results":  matchFeedToDTO(ctx, results),
		"schedule": matchFeedToDTO(ctx, schedule),
	})
}
