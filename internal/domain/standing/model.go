package standing

import "sort"

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Entry is a league table row for one team. Exactly one entry exists per
// team for the whole season.
type Entry struct {
	TeamID       string `json:"teamId"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	Points       int    `json:"points"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
}

func (e Entry) GoalDifference() int {
	return e.GoalsFor - e.GoalsAgainst
}

// Record returns e with one more match of scored/conceded applied.
func (e Entry) Record(scored, conceded int) Entry {
	e.Played++
	e.GoalsFor += scored
	e.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		e.Won++
		e.Points += PointsForWin
	case scored == conceded:
		e.Drawn++
		e.Points += PointsForDraw
	default:
		e.Lost++
	}
	return e
}

// Consistent reports whether the row's counters agree with each other.
func (e Entry) Consistent() bool {
	return e.Played == e.Won+e.Drawn+e.Lost &&
		e.Points == PointsForWin*e.Won+PointsForDraw*e.Drawn
}

// NewTable returns zeroed rows for teamIDs in the given order.
func NewTable(teamIDs []string) []Entry {
	out := make([]Entry, 0, len(teamIDs))
	for _, id := range teamIDs {
		out = append(out, Entry{TeamID: id})
	}
	return out
}

// Less orders entries by points desc, goal difference desc, then team id.
func Less(a, b Entry) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if gdA, gdB := a.GoalDifference(), b.GoalDifference(); gdA != gdB {
		return gdA > gdB
	}
	return a.TeamID < b.TeamID
}

// Sort orders entries in place by table position.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// IndexOf returns the row index for teamID, or -1.
func IndexOf(entries []Entry, teamID string) int {
	for i, e := range entries {
		if e.TeamID == teamID {
			return i
		}
	}
	return -1
}

// ApplyResult records home/away goals on both rows of entries. It reports
// false if either team is missing from the table.
func ApplyResult(entries []Entry, homeID, awayID string, homeGoals, awayGoals int) bool {
	h := IndexOf(entries, homeID)
	a := IndexOf(entries, awayID)
	if h < 0 || a < 0 {
		return false
	}
	entries[h] = entries[h].Record(homeGoals, awayGoals)
	entries[a] = entries[a].Record(awayGoals, homeGoals)
	return true
}

// Clone copies entries so reducers can mutate the copy.
func Clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
