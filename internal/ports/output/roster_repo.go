package output

import (
	"context"

	"castmatch/internal/domain/entities"
)

// RosterRepository loads the festival roster from a backing store (the
// inscription database). Implementations return raw entities; validation
// happens when the Roster is built.
type RosterRepository interface {
	LoadActivities(ctx context.Context) ([]*entities.Activity, error)
	LoadPlayers(ctx context.Context) ([]*entities.Player, error)
}
