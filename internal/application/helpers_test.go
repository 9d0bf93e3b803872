package application

import (
	"testing"

	"castmatch/internal/domain/entities"
)

func slot(day int, part entities.Part) entities.TimeSlot {
	return entities.TimeSlot{Day: day, Part: part}
}

func activity(id uint, name string, capacity int, slots ...entities.TimeSlot) *entities.Activity {
	return &entities.Activity{ID: id, Name: name, Capacity: capacity, Slots: slots}
}

func player(id uint, name string, ideal, max int, wishes ...uint) *entities.Player {
	return &entities.Player{
		ID: id, Name: name, Ideal: ideal, Max: max, Wishes: wishes,
		Blacklist:         map[uint]struct{}{},
		RefuseOrganizedBy: map[uint]struct{}{},
		RefuseOrganizeFor: map[uint]struct{}{},
		Constraints:       map[entities.Constraint]struct{}{},
	}
}

func mustRoster(t *testing.T, players []*entities.Player, activities []*entities.Activity) *entities.Roster {
	t.Helper()
	r, err := entities.NewRoster(players, activities)
	if err != nil {
		t.Fatalf("NewRoster: %v", err)
	}
	return r
}
