package commentary

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by generators that have no credentials.
var ErrNotConfigured = errors.New("commentary: generator not configured")

const (
	FallbackMatch         = "The commentator lost their voice! Commentary is unavailable right now."
	FallbackNotConfigured = "Commentary is not configured. Set GEMINI_API_KEY to enable match recaps."
	FallbackScout         = "The scout could not file a report on this player."
)

// MatchSummary is the input for a post-match recap. KeyMoments are the
// most recent log lines, newest first.
type MatchSummary struct {
	HomeTeam   string
	AwayTeam   string
	HomeGoals  int
	AwayGoals  int
	KeyMoments []string
}

// Generator produces free text about matches and players. Implementations
// may be slow or fail; callers must treat output as optional.
type Generator interface {
	MatchCommentary(ctx context.Context, summary MatchSummary) (string, error)
	ScoutReport(ctx context.Context, playerProfile string) (string, error)
}
