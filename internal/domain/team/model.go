package team

import (
	"fmt"

	"github.com/riskibarqy/season-engine/internal/domain/player"
)

// Team is a club in the division. Colors are cosmetic only.
type Team struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	Roster         []player.Player `json:"roster"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	for _, p := range t.Roster {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %s roster: %w", t.ID, err)
		}
	}

	return nil
}

// IDs returns team ids in catalogue order.
func IDs(teams []Team) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.ID)
	}
	return out
}

// Clone copies the roster so callers cannot mutate a stored team. A nil
// roster stays nil.
func (t Team) Clone() Team {
	if t.Roster != nil {
		t.Roster = append(make([]player.Player, 0, len(t.Roster)), t.Roster...)
	}
	return t
}

func CloneAll(teams []Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Clone())
	}
	return out
}

// ValidateCatalogue checks every team and free agent before they are stored.
// Team ids and player ids must be unique across the whole catalogue.
func ValidateCatalogue(teams []Team, market []player.Player) error {
	teamIDs := make(map[string]struct{}, len(teams))
	playerIDs := make(map[string]struct{})
	claim := func(p player.Player) error {
		if _, dup := playerIDs[p.ID]; dup {
			return fmt.Errorf("duplicate player id: %s", p.ID)
		}
		playerIDs[p.ID] = struct{}{}
		return nil
	}

	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := teamIDs[t.ID]; dup {
			return fmt.Errorf("duplicate team id: %s", t.ID)
		}
		teamIDs[t.ID] = struct{}{}
		for _, p := range t.Roster {
			if err := claim(p); err != nil {
				return err
			}
		}
	}
	for _, p := range market {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("free agent: %w", err)
		}
		if err := claim(p); err != nil {
			return err
		}
	}

	return nil
}
