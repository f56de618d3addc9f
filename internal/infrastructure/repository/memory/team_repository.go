package memory

import (
	"context"

	"github.com/riskibarqy/season-engine/internal/domain/team"
)

// TeamRepository serves a fixed catalogue in seed order. It is read-only
// after construction.
type TeamRepository struct {
	teams []team.Team
	index map[string]int
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{
		teams: team.CloneAll(teams),
		index: make(map[string]int, len(teams)),
	}
	for i, t := range r.teams {
		if _, dup := r.index[t.ID]; !dup {
			r.index[t.ID] = i
		}
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	return team.CloneAll(r.teams), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	i, ok := r.index[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return r.teams[i].Clone(), true, nil
}
