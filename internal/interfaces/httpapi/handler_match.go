package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/season-engine/internal/usecase"
)

func (h *Handler) PrepareMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PrepareMatch")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	snapshot, err := h.matchService.Prepare(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "prepare match failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(snapshot))
}

// GetMatch returns the live match. With ?commentary=wait the response is
// held until the post-match recap is settled.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	read := h.matchService.Snapshot
	if r.URL.Query().Get("commentary") == "wait" {
		read = h.matchService.AwaitCommentary
	}
	snapshot, err := read(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(snapshot))
}

// Kickoff starts the first half. With ?wait=true the response is held
// until the half has been revealed.
func (h *Handler) Kickoff(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Kickoff")
	defer span.End()

	h.playHalf(ctx, w, r, "kickoff", h.matchService.Kickoff)
}

func (h *Handler) StartSecondHalf(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartSecondHalf")
	defer span.End()

	h.playHalf(ctx, w, r, "second half", h.matchService.StartSecondHalf)
}

func (h *Handler) playHalf(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	action string,
	start func(context.Context, string) (usecase.MatchSnapshot, error),
) {
	seasonID := r.PathValue("seasonID")
	snapshot, err := start(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, action+" failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if queryBool(r, "wait") {
		snapshot, err = h.matchService.Await(ctx, seasonID)
		if err != nil {
			h.logger.WarnContext(ctx, action+" await failed", "season_id", seasonID, "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	writeSuccess(ctx, w, http.StatusAccepted, matchToDTO(snapshot))
}

func (h *Handler) ExitMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExitMatch")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	state, err := h.matchService.Exit(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "exit match failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(state, h.teamNames(ctx)))
}

func (h *Handler) AbandonMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AbandonMatch")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	if err := h.matchService.Abandon(ctx, seasonID); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
