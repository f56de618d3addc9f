package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/season-engine/internal/domain/match"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-engine/internal/platform/cache"
	"github.com/riskibarqy/season-engine/internal/platform/id"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
	"github.com/riskibarqy/season-engine/internal/platform/random"
	"github.com/riskibarqy/season-engine/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	teams := memory.SeedTeams(random.NewSeeded(7))[:4]
	teamRepo := memory.NewTeamRepository(teams)

	seasons := usecase.NewSeasonService(
		teamRepo,
		memory.NewMarketRepository(memory.SeedMarket()),
		memory.NewSeasonRepository(),
		id.NewPrefixedGenerator("season", 8),
		random.NewSeeded(7),
		usecase.SeasonConfig{LeagueName: "Test League", StartingBudget: 10_000_000},
		logger,
	)
	commentarySvc := usecase.NewCommentaryService(nil, usecase.CommentaryConfig{}, logger)
	matches := usecase.NewMatchService(seasons, commentarySvc, random.NewSeeded(8), usecase.MatchConfig{Rules: match.DefaultRules()}, nil, nil, logger)

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, 50),
		seasons,
		matches,
		usecase.NewTransferService(seasons),
		usecase.NewScoutService(seasons, commentarySvc, cache.NewStore(time.Minute)),
		usecase.NewProjectionService(seasons, random.NewSeeded(9), usecase.ProjectionConfig{Runs: 50, Workers: 2}, logger),
		logger,
	)
	return NewRouter(handler, RouterConfig{ServiceName: "season-engine-test", CORSAllowedOrigins: []string{"*"}}, logger)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data  T                `json:"data"`
		Error *googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	if body.Error != nil {
		t.Fatalf("unexpected error response: %+v", body.Error)
	}
	return body.Data
}

func decodeErrorReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || len(body.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	return body.Error.Errors[0].Reason
}

func startTestSeason(t *testing.T, router http.Handler) seasonDTO {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/seasons", `{"teamId":"team-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start season status: got=%d want=%d body=%s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	return decodeData[seasonDTO](t, rec)
}

func TestHandler_HealthzAndTeams(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	if rec := doRequest(t, router, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status: got=%d want=200", rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/teams", "")
	teams := decodeData[[]teamDTO](t, rec)
	if len(teams) != 4 || teams[0].Name != "Flamengo" {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/teams/team-02", "")
	details := decodeData[teamDetailDTO](t, rec)
	if details.Team.ID != "team-02" || len(details.Roster) != 11 {
		t.Fatalf("unexpected team details: id=%s roster=%d", details.Team.ID, len(details.Roster))
	}
	if details.Strength < 65 || details.Strength > 85 {
		t.Fatalf("strength outside rating range: %v", details.Strength)
	}
}

func TestHandler_StartSeasonValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	tests := []struct {
		name   string
		body   string
		status int
		reason string
	}{
		{name: "empty body", body: "", status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "unknown field", body: `{"teamId":"team-01","extra":1}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "missing team", body: `{"teamId":""}`, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "unknown team", body: `{"teamId":"team-99"}`, status: http.StatusNotFound, reason: "notFound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/seasons", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
			if got := decodeErrorReason(t, rec); got != tt.reason {
				t.Fatalf("reason: got=%s want=%s", got, tt.reason)
			}
		})
	}
}

func TestHandler_SeasonReads(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	if started.Week != 1 || started.LastWeek != 6 || started.Budget != 10_000_000 {
		t.Fatalf("unexpected new season: week=%d lastWeek=%d budget=%d", started.Week, started.LastWeek, started.Budget)
	}
	if started.NextFixture == nil || started.NextFixture.HomeTeam == "" {
		t.Fatalf("expected a named next fixture, got %+v", started.NextFixture)
	}

	base := "/v1/seasons/" + started.ID
	table := decodeData[[]standingDTO](t, doRequest(t, router, http.MethodGet, base+"/table", ""))
	if len(table) != 4 {
		t.Fatalf("unexpected table size: got=%d want=4", len(table))
	}

	fixtures := decodeData[[]fixtureDTO](t, doRequest(t, router, http.MethodGet, base+"/fixtures", ""))
	if len(fixtures) != 12 {
		t.Fatalf("unexpected fixture count: got=%d want=12", len(fixtures))
	}
	weekOne := decodeData[[]fixtureDTO](t, doRequest(t, router, http.MethodGet, base+"/fixtures?week=1", ""))
	if len(weekOne) != 2 {
		t.Fatalf("unexpected week fixtures: got=%d want=2", len(weekOne))
	}

	if rec := doRequest(t, router, http.MethodGet, base+"/fixtures?week=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad week status: got=%d want=400", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodGet, "/v1/seasons/season-missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing season status: got=%d want=404", rec.Code)
	}
}

func TestHandler_SkipWeekAndCompletion(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	base := "/v1/seasons/" + started.ID

	var last seasonDTO
	for week := 1; week <= started.LastWeek; week++ {
		rec := doRequest(t, router, http.MethodPost, base+"/skip-week", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("skip week %d status: got=%d body=%s", week, rec.Code, rec.Body.String())
		}
		last = decodeData[seasonDTO](t, rec)
	}
	if !last.Complete || last.NextFixture != nil {
		t.Fatalf("expected completed season, got complete=%v next=%+v", last.Complete, last.NextFixture)
	}
	for _, row := range last.Table {
		if row.Played != 6 {
			t.Fatalf("team %s played=%d want=6", row.TeamID, row.Played)
		}
	}

	rec := doRequest(t, router, http.MethodPost, base+"/skip-week", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("overrun status: got=%d want=409", rec.Code)
	}
	if got := decodeErrorReason(t, rec); got != "seasonComplete" {
		t.Fatalf("overrun reason: got=%s want=seasonComplete", got)
	}

	varLog := decodeData[[]varEntryDTO](t, doRequest(t, router, http.MethodGet, base+"/var-log", ""))
	if len(varLog) < started.LastWeek {
		t.Fatalf("expected a note for every skipped week, got %d", len(varLog))
	}
}

func TestHandler_MatchLifecycle(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	base := "/v1/seasons/" + started.ID

	if rec := doRequest(t, router, http.MethodGet, base+"/match", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("snapshot before prepare: got=%d want=404", rec.Code)
	}

	rec := doRequest(t, router, http.MethodPost, base+"/match", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("prepare status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	prepared := decodeData[matchDTO](t, rec)
	if prepared.Phase != match.PhasePre || prepared.Week != 1 {
		t.Fatalf("unexpected prepared match: phase=%s week=%d", prepared.Phase, prepared.Week)
	}

	if rec := doRequest(t, router, http.MethodPost, base+"/match/second-half", ""); rec.Code != http.StatusConflict {
		t.Fatalf("second half before kickoff: got=%d want=409", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, base+"/match/exit", ""); rec.Code != http.StatusConflict {
		t.Fatalf("exit before full time: got=%d want=409", rec.Code)
	}

	half := decodeData[matchDTO](t, doRequest(t, router, http.MethodPost, base+"/match/kickoff?wait=true", ""))
	if half.Phase != match.PhaseHalftime || half.Minute != 45 {
		t.Fatalf("unexpected halftime: phase=%s minute=%d", half.Phase, half.Minute)
	}

	final := decodeData[matchDTO](t, doRequest(t, router, http.MethodPost, base+"/match/second-half?wait=true", ""))
	if final.Phase != match.PhaseFinished || final.Minute != 90 {
		t.Fatalf("unexpected full time: phase=%s minute=%d", final.Phase, final.Minute)
	}
	if len(final.Log) == 0 || final.Log[0].Minute < final.Log[len(final.Log)-1].Minute {
		t.Fatalf("expected newest-first match log")
	}

	recap := decodeData[matchDTO](t, doRequest(t, router, http.MethodGet, base+"/match?commentary=wait", ""))
	if recap.CommentaryStatus != string(usecase.CommentaryFallback) || recap.Commentary == "" {
		t.Fatalf("unexpected recap: status=%s text=%q", recap.CommentaryStatus, recap.Commentary)
	}

	after := decodeData[seasonDTO](t, doRequest(t, router, http.MethodPost, base+"/match/exit", ""))
	if after.Week != 2 {
		t.Fatalf("unexpected week after exit: got=%d want=2", after.Week)
	}
	var user standingDTO
	for _, row := range after.Table {
		if row.IsUser {
			user = row
		}
	}
	if user.Played != 1 || user.GoalsFor != final.UserGoals || user.GoalsAgainst != final.OpponentGoals {
		t.Fatalf("table does not reflect the match: row=%+v score=%d-%d", user, final.UserGoals, final.OpponentGoals)
	}

	if rec := doRequest(t, router, http.MethodGet, base+"/match", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("snapshot after exit: got=%d want=404", rec.Code)
	}
}

func TestHandler_AbandonMatch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	base := "/v1/seasons/" + started.ID

	doRequest(t, router, http.MethodPost, base+"/match", "")
	if rec := doRequest(t, router, http.MethodDelete, base+"/match", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("abandon status: got=%d want=204", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodDelete, base+"/match", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second abandon status: got=%d want=404", rec.Code)
	}

	state := decodeData[seasonDTO](t, doRequest(t, router, http.MethodGet, base, ""))
	if state.Week != 1 {
		t.Fatalf("abandoned match must not advance the season: week=%d", state.Week)
	}
}

func TestHandler_Transfers(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	base := "/v1/seasons/" + started.ID

	market := decodeData[[]map[string]any](t, doRequest(t, router, http.MethodGet, base+"/market", ""))
	if len(market) != 10 {
		t.Fatalf("unexpected market size: got=%d want=10", len(market))
	}

	rec := doRequest(t, router, http.MethodPost, base+"/market/fa-02/buy", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unaffordable buy status: got=%d want=400", rec.Code)
	}
	if got := decodeErrorReason(t, rec); got != "insufficientFunds" {
		t.Fatalf("unaffordable buy reason: got=%s want=insufficientFunds", got)
	}

	bought := decodeData[transferDTO](t, doRequest(t, router, http.MethodPost, base+"/market/fa-06/buy", ""))
	if bought.Amount != 8_000_000 || bought.Budget != 2_000_000 {
		t.Fatalf("unexpected buy receipt: amount=%d budget=%d", bought.Amount, bought.Budget)
	}

	sold := decodeData[transferDTO](t, doRequest(t, router, http.MethodPost, base+"/squad/fa-06/sell", ""))
	if sold.Amount != 6_400_000 || sold.Budget != 8_400_000 {
		t.Fatalf("unexpected sell receipt: amount=%d budget=%d", sold.Amount, sold.Budget)
	}

	if rec := doRequest(t, router, http.MethodPost, base+"/squad/fa-06/sell", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("double sell status: got=%d want=404", rec.Code)
	}
}

func TestHandler_ScoutAndOdds(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	started := startTestSeason(t, router)
	base := "/v1/seasons/" + started.ID

	report := decodeData[usecase.ScoutReport](t, doRequest(t, router, http.MethodGet, base+"/players/fa-01/scout", ""))
	if !report.Fallback || report.PlayerID != "fa-01" {
		t.Fatalf("expected fallback scout report, got %+v", report)
	}
	if rec := doRequest(t, router, http.MethodGet, base+"/players/nobody/scout", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown player status: got=%d want=404", rec.Code)
	}

	odds := decodeData[usecase.TitleProjection](t, doRequest(t, router, http.MethodGet, base+"/odds?runs=20", ""))
	if odds.Runs != 20 {
		t.Fatalf("unexpected runs: got=%d want=20", odds.Runs)
	}
	total := 0
	for _, o := range odds.Odds {
		total += o.Titles
	}
	if total != 20 {
		t.Fatalf("titles must sum to runs: got=%d want=20", total)
	}

	if rec := doRequest(t, router, http.MethodGet, base+"/odds?runs=abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad runs status: got=%d want=400", rec.Code)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", rec.Code)
	}
	if got := decodeErrorReason(t, rec); got != "internalError" {
		t.Fatalf("reason: got=%s want=internalError", got)
	}
}
