package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-engine/internal/usecase"
)

func (h *Handler) ListMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMarket")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	players, err := h.transferService.Market(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list market failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuyPlayer")
	defer span.End()

	seasonID, playerID := r.PathValue("seasonID"), r.PathValue("playerID")
	receipt, err := h.transferService.Buy(ctx, seasonID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "buy player failed", "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferToDTO(receipt))
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	seasonID, playerID := r.PathValue("seasonID"), r.PathValue("playerID")
	receipt, err := h.transferService.Sell(ctx, seasonID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed", "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferToDTO(receipt))
}

func (h *Handler) ScoutPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoutPlayer")
	defer span.End()

	seasonID, playerID := r.PathValue("seasonID"), r.PathValue("playerID")
	report, err := h.scoutService.Report(ctx, seasonID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "scout player failed", "season_id", seasonID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func transferToDTO(v usecase.TransferReceipt) transferDTO {
	return transferDTO{
		Player: v.Player,
		Amount: v.Amount,
		Budget: v.Budget,
	}
}
