package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/season-engine/internal/domain/team"
	"github.com/riskibarqy/season-engine/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/season-engine/internal/mocks/domain/team"
)

func TestTeamService_ListAndDetails(t *testing.T) {
	t.Parallel()

	svc := NewTeamService(memory.NewTeamRepository(testTeams()), 0)
	ctx := context.Background()

	teams, err := svc.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 4 {
		t.Fatalf("unexpected team count: got=%d want=4", len(teams))
	}

	details, err := svc.GetTeamDetails(ctx, " team-b ")
	if err != nil {
		t.Fatalf("get team details: %v", err)
	}
	if details.Team.Name != "Bravo" || details.Strength != 70 {
		t.Fatalf("unexpected details: got=%s/%v want=Bravo/70", details.Team.Name, details.Strength)
	}

	if _, err := svc.GetTeamDetails(ctx, "team-z"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetTeamDetails(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_EmptyRosterUsesDefaultStrength(t *testing.T) {
	t.Parallel()

	repo := teammock.NewRepository(t)
	repo.On("GetByID", context.Background(), "team-x").
		Return(team.Team{ID: "team-x", Name: "Xray"}, true, nil).Once()

	details, err := NewTeamService(repo, 50).GetTeamDetails(context.Background(), "team-x")
	if err != nil {
		t.Fatalf("get team details: %v", err)
	}
	if details.Strength != 50 {
		t.Fatalf("unexpected strength: got=%v want=50", details.Strength)
	}
}
