package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
)

type teamsQuery struct {
	Division   string `validate:"omitempty,max=32"`
	Conference string `validate:"omitempty,max=96"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := teamsQuery{
		Division:   strings.TrimSpace(r.URL.Query().Get("division")),
		Conference: strings.TrimSpace(r.URL.Query().Get("conference")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	var feed usecase.FeedResult[team.Team]
	if query.Conference != "" {
		feed = h.feedService.TeamsByConference(ctx, query.Division, query.Conference)
	} else {
		feed = h.feedService.Teams(ctx, query.Division)
	}
	writeSuccess(ctx, w, http.StatusOK, toFeedDTO(feed, teamToDTO))
}

// ListConferences lists the conferences of teams in the requested division.
func (h *Handler) ListConferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConferences")
	defer span.End()

	query := divisionQuery{Division: strings.TrimSpace(r.URL.Query().Get("division"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	feed := h.feedService.Conferences(ctx, query.Division, query.Division)
	writeSuccess(ctx, w, http.StatusOK, toFeedDTO(feed, identity[string]))
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	query := divisionQuery{Division: strings.TrimSpace(r.URL.Query().Get("division"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	feed := h.feedService.Divisions(ctx, query.Division)
	writeSuccess(ctx, w, http.StatusOK, toFeedDTO(feed, identity[string]))
}
