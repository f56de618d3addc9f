package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/season-engine/internal/domain/player"
	"github.com/riskibarqy/season-engine/internal/domain/team"
)

// TeamDetails is a club together with its squad strength.
type TeamDetails struct {
	Team     team.Team `json:"team"`
	Strength float64   `json:"strength"`
}

// TeamService reads the club catalogue a season is started from.
type TeamService struct {
	teamRepo        team.Repository
	defaultStrength float64
}

func NewTeamService(teamRepo team.Repository, defaultStrength float64) *TeamService {
	if defaultStrength <= 0 {
		defaultStrength = 50
	}
	return &TeamService{
		teamRepo:        teamRepo,
		defaultStrength: defaultStrength,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeamDetails(ctx context.Context, teamID string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamDetails")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetails{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamDetails{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return TeamDetails{
		Team:     item,
		Strength: player.AverageRating(item.Roster, s.defaultStrength),
	}, nil
}
