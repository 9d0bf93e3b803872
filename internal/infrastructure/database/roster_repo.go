package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"castmatch/internal/domain/entities"
	"castmatch/internal/ports/output"
)

var _ output.RosterRepository = (*RosterRepository)(nil)

// RosterRepository loads the festival roster from the inscription database
// (the schema the registration bot writes into, see migrations/).
type RosterRepository struct {
	pool *pgxpool.Pool
}

func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

func (r *RosterRepository) LoadActivities(ctx context.Context) ([]*entities.Activity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, capacity FROM activities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}
	defer rows.Close()

	byID := map[uint]*entities.Activity{}
	var activities []*entities.Activity
	for rows.Next() {
		var (
			id       int64
			name     string
			capacity int32
		)
		if err := rows.Scan(&id, &name, &capacity); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a := &entities.Activity{ID: uint(id), Name: name, Capacity: int(capacity)}
		byID[a.ID] = a
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	if err := r.attachSlots(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachOrganizers(ctx, byID); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *RosterRepository) attachSlots(ctx context.Context, byID map[uint]*entities.Activity) error {
	rows, err := r.pool.Query(ctx,
		`SELECT activity_id, day, part FROM activity_slots ORDER BY activity_id, day, part`)
	if err != nil {
		return fmt.Errorf("load activity slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			activityID int64
			day        int32
			part       int32
		)
		if err := rows.Scan(&activityID, &day, &part); err != nil {
			return fmt.Errorf("scan activity slot: %w", err)
		}
		if a, ok := byID[uint(activityID)]; ok {
			a.Slots = append(a.Slots, entities.TimeSlot{Day: int(day), Part: entities.Part(part)})
		}
	}
	return rows.Err()
}

func (r *RosterRepository) attachOrganizers(ctx context.Context, byID map[uint]*entities.Activity) error {
	rows, err := r.pool.Query(ctx,
		`SELECT activity_id, player_id FROM activity_organizers ORDER BY activity_id, player_id`)
	if err != nil {
		return fmt.Errorf("load organizers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var activityID, playerID int64
		if err := rows.Scan(&activityID, &playerID); err != nil {
			return fmt.Errorf("scan organizer: %w", err)
		}
		if a, ok := byID[uint(activityID)]; ok {
			a.Organizers = append(a.Organizers, uint(playerID))
		}
	}
	return rows.Err()
}

func (r *RosterRepository) LoadPlayers(ctx context.Context) ([]*entities.Player, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, ideal_activities, max_activities FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	byID := map[uint]*entities.Player{}
	var players []*entities.Player
	for rows.Next() {
		var (
			id         int64
			name       string
			ideal, max int32
		)
		if err := rows.Scan(&id, &name, &ideal, &max); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p := &entities.Player{
			ID:                uint(id),
			Name:              name,
			Ideal:             int(ideal),
			Max:               int(max),
			Blacklist:         map[uint]struct{}{},
			RefuseOrganizedBy: map[uint]struct{}{},
			RefuseOrganizeFor: map[uint]struct{}{},
			Constraints:       map[entities.Constraint]struct{}{},
		}
		byID[p.ID] = p
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}

	if err := r.attachWishes(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachBlacklists(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachConstraints(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.attachAbsences(ctx, byID); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *RosterRepository) attachWishes(ctx context.Context, byID map[uint]*entities.Player) error {
	// rank is 1-based and unique per player; ordering by it rebuilds the
	// wish list in preference order.
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, activity_id FROM wishes ORDER BY player_id, rank`)
	if err != nil {
		return fmt.Errorf("load wishes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playerID, activityID int64
		if err := rows.Scan(&playerID, &activityID); err != nil {
			return fmt.Errorf("scan wish: %w", err)
		}
		if p, ok := byID[uint(playerID)]; ok {
			p.Wishes = append(p.Wishes, uint(activityID))
		}
	}
	return rows.Err()
}

func (r *RosterRepository) attachBlacklists(ctx context.Context, byID map[uint]*entities.Player) error {
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, other_player_id, kind FROM blacklists ORDER BY player_id, other_player_id`)
	if err != nil {
		return fmt.Errorf("load blacklists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			playerID, otherID int64
			kind              string
		)
		if err := rows.Scan(&playerID, &otherID, &kind); err != nil {
			return fmt.Errorf("scan blacklist: %w", err)
		}
		p, ok := byID[uint(playerID)]
		if !ok {
			continue
		}
		switch kind {
		case "dont_play_with":
			p.Blacklist[uint(otherID)] = struct{}{}
		case "dont_be_organized_by":
			p.RefuseOrganizedBy[uint(otherID)] = struct{}{}
		case "dont_organize_for":
			p.RefuseOrganizeFor[uint(otherID)] = struct{}{}
		}
	}
	return rows.Err()
}

func (r *RosterRepository) attachConstraints(ctx context.Context, byID map[uint]*entities.Player) error {
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, constraint_id FROM player_constraints ORDER BY player_id, constraint_id`)
	if err != nil {
		return fmt.Errorf("load constraints: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playerID, constraintID int64
		if err := rows.Scan(&playerID, &constraintID); err != nil {
			return fmt.Errorf("scan constraint: %w", err)
		}
		if p, ok := byID[uint(playerID)]; ok {
			p.Constraints[entities.Constraint(constraintID)] = struct{}{}
		}
	}
	return rows.Err()
}

func (r *RosterRepository) attachAbsences(ctx context.Context, byID map[uint]*entities.Player) error {
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, day, part FROM player_absences ORDER BY player_id, day, part`)
	if err != nil {
		return fmt.Errorf("load absences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			playerID int64
			day      int32
			part     int32
		)
		if err := rows.Scan(&playerID, &day, &part); err != nil {
			return fmt.Errorf("scan absence: %w", err)
		}
		if p, ok := byID[uint(playerID)]; ok {
			p.Unavailable = append(p.Unavailable, entities.TimeSlot{Day: int(day), Part: entities.Part(part)})
		}
	}
	return rows.Err()
}
