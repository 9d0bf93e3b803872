package entities

// Activity is a capacity-bound scheduled session players can be cast into.
// Everything here is read-only once the roster is built; the evolving cast
// lives in the Assignment.
type Activity struct {
	ID       uint
	Name     string
	Capacity int
	// Slots the session occupies. Multi-slot activities (a full day, an
	// evening plus the night) list every cell they cover.
	Slots []TimeSlot
	// Organizers are player IDs. They are part of the session but never
	// counted against Capacity.
	Organizers []uint
}

// OccupiesSlot reports whether the activity covers the given grid cell.
func (a *Activity) OccupiesSlot(s TimeSlot) bool {
	for _, t := range a.Slots {
		if t.Overlaps(s) {
			return true
		}
	}
	return false
}

// OverlapsAny reports whether any of the activity's slots overlaps one of the
// given slots.
func (a *Activity) OverlapsAny(slots []TimeSlot) bool {
	for _, s := range slots {
		if a.OccupiesSlot(s) {
			return true
		}
	}
	return false
}

// Days returns the distinct festival days the activity occupies, in slot
// order.
func (a *Activity) Days() []int {
	var days []int
	for _, s := range a.Slots {
		seen := false
		for _, d := range days {
			if d == s.Day {
				seen = true
				break
			}
		}
		if !seen {
			days = append(days, s.Day)
		}
	}
	return days
}

// HasOrganizer reports whether the given player organizes this activity.
func (a *Activity) HasOrganizer(playerID uint) bool {
	for _, id := range a.Organizers {
		if id == playerID {
			return true
		}
	}
	return false
}
