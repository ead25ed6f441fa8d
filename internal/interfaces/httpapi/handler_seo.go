package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetHomeSEO(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHomeSEO")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, seoToDTO(h.seoService.Home()))
}

func (h *Handler) GetDivisionSEO(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDivisionSEO")
	defer span.End()

	meta, err := h.seoService.Division(r.PathValue("division"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seoToDTO(meta))
}

func (h *Handler) GetConferenceSEO(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetConferenceSEO")
	defer span.End()

	meta, err := h.seoService.Conference(r.PathValue("conference"), r.URL.Query().Get("division"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seoToDTO(meta))
}

func (h *Handler) GetTeamSEO(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSEO")
	defer span.End()

	division := strings.TrimSpace(r.URL.Query().Get("division"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	meta, err := h.seoService.Team(ctx, division, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "build team seo failed", "team_id", teamID, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seoToDTO(meta))
}
