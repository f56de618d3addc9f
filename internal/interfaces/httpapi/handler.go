package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

type Handler struct {
	teamService       *usecase.TeamService
	seasonService     *usecase.SeasonService
	matchService      *usecase.MatchService
	transferService   *usecase.TransferService
	scoutService      *usecase.ScoutService
	projectionService *usecase.ProjectionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	seasonService *usecase.SeasonService,
	matchService *usecase.MatchService,
	transferService *usecase.TransferService,
	scoutService *usecase.ScoutService,
	projectionService *usecase.ProjectionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:       teamService,
		seasonService:     seasonService,
		matchService:      matchService,
		transferService:   transferService,
		scoutService:      scoutService,
		projectionService: projectionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetails")
	defer span.End()

	teamID := r.PathValue("teamID")
	details, err := h.teamService.GetTeamDetails(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team details failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailDTO{
		Team:     teamToDTO(details.Team),
		Strength: round1(details.Strength),
		Roster:   details.Team.Roster,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a strict JSON body into dst. An empty body is accepted
// and leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// teamNames maps team ids to display names. A catalogue failure degrades
// to ids rather than failing the read.
func (h *Handler) teamNames(ctx context.Context) map[string]string {
	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "team catalogue unavailable, using ids", "error", err)
		return map[string]string{}
	}
	out := make(map[string]string, len(teams))
	for _, t := range teams {
		out[t.ID] = t.Name
	}
	return out
}

func queryBool(r *http.Request, key string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
