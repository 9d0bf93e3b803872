package entities

// Constraint is a temporal preference a player opted into on the inscription
// form. Constraints only restrict the player who declared them.
type Constraint int

const (
	// NoTwoSameDay: never play two activities the same day.
	NoTwoSameDay Constraint = iota
	// NoPlayOrgaSameDay: never play and organize the same day.
	NoPlayOrgaSameDay
	// NoTwoConsecutiveDays: never play two days in a row.
	NoTwoConsecutiveDays
	// NoThreeConsecutiveDays: never play three days in a row.
	NoThreeConsecutiveDays
	// NoFourConsecutiveDays: never play four or more days in a row.
	NoFourConsecutiveDays
	// NoNightThenMorning: never play an evening or night slot and the next
	// morning.
	NoNightThenMorning
)

// Player is a participant with a ranked wish list and count limits. Read-only
// once the roster is built.
type Player struct {
	ID   uint
	Name string
	// Wishes holds activity IDs in preference order: Wishes[0] is the rank-1
	// wish. No duplicates.
	Wishes []uint
	// Ideal is the number of activities the player hopes to get; Max is the
	// hard upper bound. Ideal <= Max.
	Ideal int
	Max   int
	// Blacklist: players they refuse to share an activity with.
	Blacklist map[uint]struct{}
	// RefuseOrganizedBy: organizers whose activities they refuse to join.
	RefuseOrganizedBy map[uint]struct{}
	// RefuseOrganizeFor: players they refuse to organize for.
	RefuseOrganizeFor map[uint]struct{}
	// Unavailable: slots where the player declared an absence.
	Unavailable []TimeSlot
	// Organizing: activity IDs the player organizes. Derived from the
	// activities' organizer lists when the roster is built.
	Organizing []uint
	// Constraints the player opted into.
	Constraints map[Constraint]struct{}
}

// Rank returns the 1-based preference rank of an activity on the wish list.
func (p *Player) Rank(activityID uint) (int, bool) {
	for i, id := range p.Wishes {
		if id == activityID {
			return i + 1, true
		}
	}
	return 0, false
}

// Wants reports whether the activity appears on the wish list.
func (p *Player) Wants(activityID uint) bool {
	_, ok := p.Rank(activityID)
	return ok
}

// Has reports whether the player opted into the given constraint.
func (p *Player) Has(c Constraint) bool {
	_, ok := p.Constraints[c]
	return ok
}

// Refuses reports whether the other player is on the don't-play-with
// blacklist.
func (p *Player) Refuses(otherID uint) bool {
	_, ok := p.Blacklist[otherID]
	return ok
}

// IsUnavailable reports whether the player declared an absence on the slot.
func (p *Player) IsUnavailable(s TimeSlot) bool {
	for _, t := range p.Unavailable {
		if t.Overlaps(s) {
			return true
		}
	}
	return false
}

// OrganizerOf reports whether the player organizes the given activity.
func (p *Player) OrganizerOf(activityID uint) bool {
	for _, id := range p.Organizing {
		if id == activityID {
			return true
		}
	}
	return false
}
