package fixture

// Fixture is one scheduled pairing. Only Played changes after generation.
type Fixture struct {
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	Played     bool   `json:"played"`
}

func (f Fixture) Involves(teamID string) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// Opponent returns the other side of the fixture for teamID, or "" when
// teamID does not play in it.
func (f Fixture) Opponent(teamID string) string {
	switch teamID {
	case f.HomeTeamID:
		return f.AwayTeamID
	case f.AwayTeamID:
		return f.HomeTeamID
	default:
		return ""
	}
}

// ForWeek returns the fixtures scheduled for week, in calendar order.
func ForWeek(fixtures []Fixture, week int) []Fixture {
	out := make([]Fixture, 0)
	for _, f := range fixtures {
		if f.Week == week {
			out = append(out, f)
		}
	}
	return out
}

// FindForTeam returns teamID's fixture in week.
func FindForTeam(fixtures []Fixture, week int, teamID string) (Fixture, bool) {
	for _, f := range fixtures {
		if f.Week == week && f.Involves(teamID) {
			return f, true
		}
	}
	return Fixture{}, false
}

// MarkWeekPlayed returns a copy of fixtures with every fixture of week
// flagged as played.
func MarkWeekPlayed(fixtures []Fixture, week int) []Fixture {
	out := make([]Fixture, len(fixtures))
	copy(out, fixtures)
	for i := range out {
		if out[i].Week == week {
			out[i].Played = true
		}
	}
	return out
}

// LastWeek returns the highest week number present in fixtures.
func LastWeek(fixtures []Fixture) int {
	last := 0
	for _, f := range fixtures {
		if f.Week > last {
			last = f.Week
		}
	}
	return last
}
