package gemini

import (
	"strconv"

	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/valyala/bytebufferpool"
)

func matchPrompt(s commentary.MatchSummary) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("You are an energetic, dramatic football commentator.\n")
	_, _ = buf.WriteString("Write a short, exciting recap (at most 3 paragraphs) of this match.\n\n")
	_, _ = buf.WriteString("Home: ")
	_, _ = buf.WriteString(s.HomeTeam)
	_, _ = buf.WriteString("\nAway: ")
	_, _ = buf.WriteString(s.AwayTeam)
	_, _ = buf.WriteString("\nFinal score: ")
	_, _ = buf.WriteString(strconv.Itoa(s.HomeGoals))
	_, _ = buf.WriteString(" x ")
	_, _ = buf.WriteString(strconv.Itoa(s.AwayGoals))
	_, _ = buf.WriteString("\n\nKey moments:\n")
	for _, moment := range s.KeyMoments {
		_, _ = buf.WriteString(moment)
		_ = buf.WriteByte('\n')
	}
	_, _ = buf.WriteString("\nUse colourful football slang and be dramatic!")

	return buf.String()
}

func scoutPrompt(profile string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("You are a professional football scout. ")
	_, _ = buf.WriteString("Give a short tactical assessment (2 sentences) of a player with this profile: ")
	_, _ = buf.WriteString(profile)
	_, _ = buf.WriteString(". Say whether the player is worth the investment.")

	return buf.String()
}
