package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeamDetails)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/seasons", handler.StartSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/table", handler.GetTable)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/var-log", handler.ListVarLog)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/skip-week", handler.SkipWeek)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/odds", handler.GetTitleOdds)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/seasons/{seasonID}/match", handler.PrepareMatch)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/match", handler.GetMatch)
	mux.HandleFunc("DELETE /v1/seasons/{seasonID}/match", handler.AbandonMatch)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/match/kickoff", handler.Kickoff)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/match/second-half", handler.StartSecondHalf)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/match/exit", handler.ExitMatch)
}

func registerTransferRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/market", handler.ListMarket)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/market/{playerID}/buy", handler.BuyPlayer)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/squad/{playerID}/sell", handler.SellPlayer)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/players/{playerID}/scout", handler.ScoutPlayer)
}
