package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/season-engine/internal/platform/random"
)

func TestProjectionService_TitleOdds(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, 3)
	id := f.start(t, "team-a")
	svc := NewProjectionService(f.service, random.NewSeeded(3), ProjectionConfig{Runs: 200, Workers: 3}, nil)

	got, err := svc.TitleOdds(context.Background(), id, 0)
	if err != nil {
		t.Fatalf("title odds: %v", err)
	}
	if got.Runs != 200 || got.Week != 1 || len(got.Odds) != 4 {
		t.Fatalf("unexpected projection header: %+v", got)
	}

	total := 0
	for i, odds := range got.Odds {
		total += odds.Titles
		if i > 0 && odds.Titles > got.Odds[i-1].Titles {
			t.Fatalf("odds must be sorted by titles: %+v", got.Odds)
		}
	}
	if total != 200 {
		t.Fatalf("every run crowns one champion: got=%d want=200", total)
	}
}

func TestProjectionService_CompletedSeasonIsCertain(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, 5)
	id := f.start(t, "team-a")
	for week := 1; week <= 6; week++ {
		if _, err := f.service.SkipWeek(context.Background(), id); err != nil {
			t.Fatalf("skip week %d: %v", week, err)
		}
	}
	state, err := f.service.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get season: %v", err)
	}

	svc := NewProjectionService(f.service, random.NewSeeded(5), ProjectionConfig{Workers: 2}, nil)
	got, err := svc.TitleOdds(context.Background(), id, 50)
	if err != nil {
		t.Fatalf("title odds: %v", err)
	}
	if got.Odds[0].TeamID != state.Table[0].TeamID || got.Odds[0].Percent != 100 {
		t.Fatalf("completed season must project the current leader: got=%+v leader=%s", got.Odds[0], state.Table[0].TeamID)
	}
}

func TestProjectionService_RejectsHugeRunCount(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, 1)
	id := f.start(t, "team-a")
	svc := NewProjectionService(f.service, random.NewSeeded(1), ProjectionConfig{}, nil)

	if _, err := svc.TitleOdds(context.Background(), id, 100_001); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
