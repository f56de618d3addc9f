package player

import "fmt"

// Position represents the four roster slots used by squad generation.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionAttacker   Position = "ATT"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionAttacker:   {},
}

const (
	MinRating = 1
	MaxRating = 100
)

// Player is an athlete owned by one club roster or by the free-agent market.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Rating   int      `json:"rating"`
	Value    int64    `json:"value"`
	Age      int      `json:"age"`
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Rating < MinRating || p.Rating > MaxRating {
		return fmt.Errorf("player rating must be between %d and %d", MinRating, MaxRating)
	}
	if p.Value < 0 {
		return fmt.Errorf("player value must not be negative")
	}

	return nil
}

// AverageRating returns the mean rating of players, or fallback when the
// list is empty.
func AverageRating(players []Player, fallback float64) float64 {
	if len(players) == 0 {
		return fallback
	}
	total := 0
	for _, p := range players {
		total += p.Rating
	}
	return float64(total) / float64(len(players))
}

// IndexByID returns the position of the player with id, or -1.
func IndexByID(players []Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Describe renders a one-line profile used as scouting input.
func (p Player) Describe() string {
	return fmt.Sprintf("%s, %d years old, position %s, rating %d, market value %d", p.Name, p.Age, p.Position, p.Rating, p.Value)
}
