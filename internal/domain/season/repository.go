package season

import "context"

// Repository stores whole season snapshots. Save replaces the stored
// snapshot in one write.
type Repository interface {
	GetByID(ctx context.Context, seasonID string) (State, bool, error)
	Save(ctx context.Context, state State) error
}
