package application

import (
	"slices"

	"castmatch/internal/domain/entities"
)

// ActivityDelta lists, for one activity, the players present in the compared
// assignment but not the reference (Added) and the ones the compared
// assignment lost (Removed).
type ActivityDelta struct {
	ActivityID uint
	Added      []uint
	Removed    []uint
}

// Compare classifies two independently produced assignments activity by
// activity, relative to ref. It is a pure set difference over the two
// relations: no matching internals are involved. Activities whose cast is
// identical are omitted; IDs are sorted for stable output.
func Compare(ref, other *entities.Assignment) []ActivityDelta {
	ids := map[uint]bool{}
	for _, id := range ref.ActivityIDs() {
		ids[id] = true
	}
	for _, id := range other.ActivityIDs() {
		ids[id] = true
	}
	sorted := make([]uint, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	slices.Sort(sorted)

	var deltas []ActivityDelta
	for _, id := range sorted {
		refCast := ref.ParticipantsOf(id)
		otherCast := other.ParticipantsOf(id)

		delta := ActivityDelta{ActivityID: id}
		for _, p := range otherCast {
			if !slices.Contains(refCast, p) {
				delta.Added = append(delta.Added, p)
			}
		}
		for _, p := range refCast {
			if !slices.Contains(otherCast, p) {
				delta.Removed = append(delta.Removed, p)
			}
		}
		if len(delta.Added) == 0 && len(delta.Removed) == 0 {
			continue
		}
		slices.Sort(delta.Added)
		slices.Sort(delta.Removed)
		deltas = append(deltas, delta)
	}
	return deltas
}
