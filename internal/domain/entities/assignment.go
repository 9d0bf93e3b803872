package entities

import (
	"slices"

	"castmatch/internal/domain"
)

// Assignment is the player/activity relation built pass by pass. Both
// directions of the relation are kept mutually consistent by the Assign and
// Unassign mutators; nothing else writes to it. Once frozen it becomes the
// engine's read-only output.
type Assignment struct {
	byPlayer   map[uint][]uint // player ID -> activity IDs, acceptance order
	byActivity map[uint][]uint // activity ID -> player IDs, acceptance order
	frozen     bool
}

func NewAssignment() *Assignment {
	return &Assignment{
		byPlayer:   map[uint][]uint{},
		byActivity: map[uint][]uint{},
	}
}

// Assign records an acceptance. It is the caller's job to have checked
// feasibility; Assign only guards the structural invariants.
func (a *Assignment) Assign(playerID, activityID uint) error {
	if a.frozen {
		return domain.ErrAssignmentFrozen
	}
	if a.Has(playerID, activityID) {
		return nil
	}
	a.byPlayer[playerID] = append(a.byPlayer[playerID], activityID)
	a.byActivity[activityID] = append(a.byActivity[activityID], playerID)
	return nil
}

// Unassign removes an acceptance. Only the pass runner uses it, to bump a
// provisional acceptance within a pass.
func (a *Assignment) Unassign(playerID, activityID uint) error {
	if a.frozen {
		return domain.ErrAssignmentFrozen
	}
	a.byPlayer[playerID] = remove(a.byPlayer[playerID], activityID)
	a.byActivity[activityID] = remove(a.byActivity[activityID], playerID)
	return nil
}

func remove(ids []uint, id uint) []uint {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// Has reports whether the player is part of the activity's cast.
func (a *Assignment) Has(playerID, activityID uint) bool {
	return slices.Contains(a.byPlayer[playerID], activityID)
}

// ActivitiesOf returns a copy of the player's activities, in acceptance
// order.
func (a *Assignment) ActivitiesOf(playerID uint) []uint {
	return slices.Clone(a.byPlayer[playerID])
}

// ParticipantsOf returns a copy of the activity's cast, in acceptance order.
func (a *Assignment) ParticipantsOf(activityID uint) []uint {
	return slices.Clone(a.byActivity[activityID])
}

// Count returns how many activities the player currently holds.
func (a *Assignment) Count(playerID uint) int {
	return len(a.byPlayer[playerID])
}

// ParticipantCount returns the current cast size of the activity. Organizers
// are never part of the relation, so this counts against capacity directly.
func (a *Assignment) ParticipantCount(activityID uint) int {
	return len(a.byActivity[activityID])
}

// Size returns the total number of (player, activity) acceptances.
func (a *Assignment) Size() int {
	n := 0
	for _, acts := range a.byPlayer {
		n += len(acts)
	}
	return n
}

// ActivityIDs returns the sorted IDs of activities with at least one
// participant.
func (a *Assignment) ActivityIDs() []uint {
	ids := make([]uint, 0, len(a.byActivity))
	for id, players := range a.byActivity {
		if len(players) > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// PlayerIDs returns the sorted IDs of players holding at least one activity.
func (a *Assignment) PlayerIDs() []uint {
	ids := make([]uint, 0, len(a.byPlayer))
	for id, acts := range a.byPlayer {
		if len(acts) > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Clone returns an unfrozen deep copy. Passes work on a clone and the result
// is swapped in atomically, so no reader ever observes a half-applied pass.
func (a *Assignment) Clone() *Assignment {
	c := NewAssignment()
	for p, acts := range a.byPlayer {
		if len(acts) > 0 {
			c.byPlayer[p] = slices.Clone(acts)
		}
	}
	for act, players := range a.byActivity {
		if len(players) > 0 {
			c.byActivity[act] = slices.Clone(players)
		}
	}
	return c
}

// Freeze makes the assignment read-only. The matcher freezes its output
// before handing it to reporting.
func (a *Assignment) Freeze() {
	a.frozen = true
}

func (a *Assignment) Frozen() bool {
	return a.frozen
}
