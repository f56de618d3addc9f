package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-engine/internal/domain/fixture"
)

func (h *Handler) StartSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSeason")
	defer span.End()

	var req startSeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.seasonService.Start(ctx, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "start season failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(state, h.teamNames(ctx)))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	state, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(state, h.teamNames(ctx)))
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTable")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	state, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get table failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(state.Table, state.UserTeamID, h.teamNames(ctx)))
}

// ListFixtures returns the whole schedule, or one week with ?week=N.
func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	week, err := queryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	state, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := state.Fixtures
	if week > 0 {
		items = fixture.ForWeek(state.Fixtures, week)
	}
	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(items, h.teamNames(ctx)))
}

func (h *Handler) ListVarLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVarLog")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	state, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list var log failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, varLogToDTO(state.VarLog))
}

func (h *Handler) SkipWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SkipWeek")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	state, err := h.seasonService.SkipWeek(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "skip week failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(state, h.teamNames(ctx)))
}

// GetTitleOdds projects the title race; ?runs=N overrides the default.
func (h *Handler) GetTitleOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTitleOdds")
	defer span.End()

	runs, err := queryInt(r, "runs")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	projection, err := h.projectionService.TitleOdds(ctx, seasonID, runs)
	if err != nil {
		h.logger.WarnContext(ctx, "title odds failed", "season_id", seasonID, "runs", runs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, projection)
}
